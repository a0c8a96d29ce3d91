// Package socket is the realtime relay between clients and the image collaborator
package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/x/auth"
)

var tracer = otel.Tracer("socket")

// Handler is the interface for handling realtime requests
type Handler interface {
	Connect(c echo.Context) error
	Broadcast(c echo.Context) error
}

type handler struct {
	service Service
	manager core.SocketManager
	config  core.Config
}

// NewHandler is used for wire.go
func NewHandler(service Service, manager core.SocketManager, config core.Config) Handler {
	return &handler{service, manager, config}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect checks the handshake token and then serves events until the client leaves
func (h handler) Connect(c echo.Context) error {
	token := c.QueryParam(core.TokenQuery)
	if token == "" {
		token = c.Request().Header.Get(core.APIKeyHeader)
	}
	if !auth.Verify(h.config.APIKey, token) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "unauthorized"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("failed to upgrade websocket", slog.String("error", err.Error()), slog.String("module", "socket"))
		return nil
	}

	h.manager.Subscribe(ws)
	defer h.manager.Unsubscribe(ws)

	for {
		var event core.Event
		err := ws.ReadJSON(&event)
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Info("connection closed", slog.String("error", err.Error()), slog.String("module", "socket"))
			}
			break
		}

		ctx, span := tracer.Start(context.Background(), "Socket.Handler.Event")
		open := h.service.Handle(ctx, ws, event)
		span.End()
		if !open {
			break
		}
	}

	return nil
}

// Broadcast sends a test event to every connected client
func (h handler) Broadcast(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Socket.Handler.Broadcast")
	defer span.End()

	err := h.manager.Broadcast(ctx, core.Event{Type: core.EventTest, Payload: json.RawMessage(`"test"`)})
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to broadcast", slog.String("error", err.Error()), slog.String("module", "socket"))
	}

	return c.String(http.StatusOK, "test should have been successful")
}
