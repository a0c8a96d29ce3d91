// Package user handles community member records
package user

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("user")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Get(c echo.Context) error
	GetByID(c echo.Context) error
	List(c echo.Context) error
	Post(c echo.Context) error
}

type handler struct {
	service core.UserService
}

// NewHandler creates a new handler
func NewHandler(service core.UserService) Handler {
	return &handler{service: service}
}

// Get returns a user by wallet, taken from the path or the wallet query
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "User.Handler.Get")
	defer span.End()

	wallet := c.Param("wallet")
	if wallet == "" {
		wallet = c.QueryParam("wallet")
	}

	user, err := h.service.GetByWallet(ctx, wallet)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": user})
}

// GetByID returns a user by ID
func (h handler) GetByID(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "User.Handler.GetByID")
	defer span.End()

	id := c.Param("_id")
	user, err := h.service.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": user})
}

// List returns every user
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "User.Handler.List")
	defer span.End()

	users, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": users})
}

// Post registers a user
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "User.Handler.Post")
	defer span.End()

	var request core.User
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
		return "user not found"
	case http.StatusConflict:
		return "user already exists"
	case http.StatusBadRequest:
		return err.Error()
	default:
		return "internal server error"
	}
}
