// Package character is handling game characters owned by wallets
package character

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("character")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Get(c echo.Context) error
	List(c echo.Context) error
	Post(c echo.Context) error
}

type handler struct {
	service core.CharacterService
}

// NewHandler creates a new handler
func NewHandler(service core.CharacterService) Handler {
	return &handler{service: service}
}

// Get returns a character by ID
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Get")
	defer span.End()

	character, err := h.service.GetByID(ctx, c.Param("_id"))
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": character})
}

// List returns every character
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.List")
	defer span.End()

	characters, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": characters})
}

// Post creates a character
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Post")
	defer span.End()

	var request core.CharacterData
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid request"})
	}

	created, err := h.service.Create(ctx, request)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

func message(err error) string {
	switch core.ErrorStatus(err) {
	case http.StatusNotFound:
		return "character not found"
	case http.StatusConflict:
		return "character already exists"
	case http.StatusBadRequest:
		return err.Error()
	default:
		return "internal server error"
	}
}
