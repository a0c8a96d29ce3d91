package core

const (
	EventImageRequest  = "imageRequest"
	EventImageResponse = "imageResponse"
	EventTest          = "test"
	EventDisconnect    = "disconnect"
)

const (
	APIKeyHeader = "apikey"
	TokenQuery   = "token"
)

const (
	BroadcastChannel = "ceptor:realtime"
)

const (
	DefaultUsersCollection       = "users"
	DefaultCharactersCollection  = "character_data"
	DefaultSubmissionsCollection = "submissions"
	DefaultCampaignsCollection   = "campaigns"
)
