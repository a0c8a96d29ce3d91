package core

type ResponseBase[T any] struct {
	Status  string `json:"status"`
	Content T      `json:"content"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// VoteResult is returned by a successful vote
type VoteResult struct {
	TokenID       int64 `json:"tokenID"`
	ModifiedCount int64 `json:"modifiedCount"`
}
