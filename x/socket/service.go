package socket

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/ceptorclub/ceptor/core"
)

// Service dispatches events received from a client
type Service interface {
	// Handle processes one event and reports whether the connection stays open
	Handle(ctx context.Context, conn *websocket.Conn, event core.Event) bool
}

type service struct {
	manager core.SocketManager
	image   core.ImageService
}

// NewService is for wire.go
func NewService(manager core.SocketManager, image core.ImageService) Service {
	return &service{manager: manager, image: image}
}

func (s *service) Handle(ctx context.Context, conn *websocket.Conn, event core.Event) bool {
	ctx, span := tracer.Start(ctx, "Socket.Service.Handle")
	defer span.End()

	switch event.Type {
	case core.EventImageRequest:
		go s.relayImage(ctx, conn, event.Payload)
	case core.EventTest:
		slog.InfoContext(ctx, "test event received", slog.String("payload", string(event.Payload)), slog.String("module", "socket"))
	case core.EventDisconnect:
		return false
	default:
		slog.WarnContext(ctx, "unknown event", slog.String("type", event.Type), slog.String("module", "socket"))
	}

	return true
}

// relayImage answers an image request on the same connection, outside the read loop
func (s *service) relayImage(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) {
	ctx, span := tracer.Start(ctx, "Socket.Service.RelayImage")
	defer span.End()

	response := core.Event{Type: core.EventImageResponse}
	result, err := s.image.Fetch(ctx, payload)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "image request failed", slog.String("error", err.Error()), slog.String("module", "socket"))
		response.Error = err.Error()
	} else {
		response.Payload = result
	}

	if err := s.manager.Send(conn, response); err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to send image response", slog.String("error", err.Error()), slog.String("module", "socket"))
	}
}
