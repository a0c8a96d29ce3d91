package core

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}

type ErrorBadRequest struct {
	Message string
}

func (e ErrorBadRequest) Error() string {
	return "Bad Request: " + e.Message
}

func NewErrorBadRequest(message string) ErrorBadRequest {
	return ErrorBadRequest{Message: message}
}

// ErrorStatus maps an error kind to its http status code.
// Untyped errors are persistence failures.
func ErrorStatus(err error) int {
	switch {
	case errors.As(err, &ErrorNotFound{}):
		return http.StatusNotFound
	case errors.As(err, &ErrorAlreadyExists{}):
		return http.StatusConflict
	case errors.As(err, &ErrorBadRequest{}):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsDuplicateKey reports whether err is a unique constraint violation
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
