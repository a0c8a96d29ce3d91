// Package campaign handles game scheduling records
package campaign

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("campaign")

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Post(c echo.Context) error
	Get(c echo.Context) error
	Join(c echo.Context) error
}

type handler struct {
	service core.CampaignService
}

// NewHandler creates a new handler
func NewHandler(service core.CampaignService) Handler {
	return &handler{service: service}
}

type joinRequest struct {
	Wallet string `json:"wallet"`
}

// List returns every campaign with its available dates
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Campaign.Handler.List")
	defer span.End()

	campaigns, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": campaigns})
}

// Post creates a campaign
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Campaign.Handler.Post")
	defer span.End()

	var request core.Campaign
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

// Get returns a campaign by ID
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Campaign.Handler.Get")
	defer span.End()

	campaign, err := h.service.GetByID(ctx, c.Param("_id"))
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": campaign})
}

// Join adds the wallet in the body to the campaign in the path
func (h handler) Join(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Campaign.Handler.Join")
	defer span.End()

	var request joinRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid request"})
	}

	campaign, err := h.service.Join(ctx, c.Param("_id"), request.Wallet)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": campaign})
}

func message(err error) string {
	switch core.ErrorStatus(err) {
	case http.StatusNotFound:
		return "campaign not found"
	case http.StatusConflict:
		return "campaign already exists"
	case http.StatusBadRequest:
		return err.Error()
	default:
		return "internal server error"
	}
}
