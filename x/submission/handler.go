// Package submission handles nft submissions and their weekly votes
package submission

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("submission")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Post(c echo.Context) error
	List(c echo.Context) error
	MostLiked(c echo.Context) error
	Vote(c echo.Context) error
	HighestVoted(c echo.Context) error
}

type handler struct {
	service core.SubmissionService
}

// NewHandler creates a new handler
func NewHandler(service core.SubmissionService) Handler {
	return &handler{service: service}
}

type voteRequest struct {
	TokenID *int64 `json:"tokenID"`
	Wallet  string `json:"wallet"`
}

// Post creates a submission
func (h handler) Post(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Submission.Handler.Post")
	defer span.End()

	var request core.Submission
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid request"})
	}

	created, err := h.service.Create(ctx, request)
	if err != nil {
		span.RecordError(err)
		status := core.ErrorStatus(err)
		if status == http.StatusConflict {
			return c.JSON(status, echo.Map{"status": "error", "message": "submission already exists"})
		}
		return c.JSON(status, echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

// List returns every submission
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Submission.Handler.List")
	defer span.End()

	submissions, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": submissions})
}

// MostLiked returns the submission with the most likes
func (h handler) MostLiked(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Submission.Handler.MostLiked")
	defer span.End()

	submission, err := h.service.MostLiked(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": submission})
}

// Vote casts a vote. Serves both the legacy and the frontend route.
func (h handler) Vote(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Submission.Handler.Vote")
	defer span.End()

	var request voteRequest
	err := c.Bind(&request)
	if err != nil || request.TokenID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid request"})
	}

	result, err := h.service.Vote(ctx, *request.TokenID, request.Wallet)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": result})
}

// HighestVoted returns the leader of the week in the path
func (h handler) HighestVoted(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Submission.Handler.HighestVoted")
	defer span.End()

	weekTimestamp, err := strconv.ParseInt(c.Param("weekTimestamp"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "weekTimestamp must be an integer"})
	}

	submission, err := h.service.HighestVoted(ctx, weekTimestamp)
	if err != nil {
		span.RecordError(err)
		return c.JSON(core.ErrorStatus(err), echo.Map{"status": "error", "message": message(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": submission})
}

func message(err error) string {
	switch core.ErrorStatus(err) {
	case http.StatusNotFound:
		return "submission not found"
	case http.StatusConflict:
		return "already voted"
	case http.StatusBadRequest:
		return err.Error()
	default:
		return "internal server error"
	}
}
