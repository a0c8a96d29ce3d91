//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

type AgentService interface {
	Boot(ctx context.Context)
}

type UserService interface {
	Create(ctx context.Context, user User) (User, error)
	GetByWallet(ctx context.Context, wallet string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
}

type CharacterService interface {
	Create(ctx context.Context, character CharacterData) (CharacterData, error)
	GetByID(ctx context.Context, id string) (CharacterData, error)
	List(ctx context.Context) ([]CharacterData, error)
	Count(ctx context.Context) (int64, error)
}

type SubmissionService interface {
	Create(ctx context.Context, submission Submission) (Submission, error)
	List(ctx context.Context) ([]Submission, error)
	MostLiked(ctx context.Context) (Submission, error)
	Vote(ctx context.Context, tokenID int64, wallet string) (VoteResult, error)
	HighestVoted(ctx context.Context, weekTimestamp int64) (Submission, error)
	Count(ctx context.Context) (int64, error)
}

type CampaignService interface {
	Create(ctx context.Context, campaign Campaign) (Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	GetByID(ctx context.Context, id string) (Campaign, error)
	Join(ctx context.Context, id, wallet string) (Campaign, error)
	Count(ctx context.Context) (int64, error)
}

type ImageService interface {
	Fetch(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

type SocketManager interface {
	Subscribe(conn *websocket.Conn)
	Unsubscribe(conn *websocket.Conn)
	Send(conn *websocket.Conn, event Event) error
	Broadcast(ctx context.Context, event Event) error
	CurrentConnectionCount() int64
}
