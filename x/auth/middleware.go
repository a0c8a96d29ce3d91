// Package auth gates the api behind the shared api key
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("auth")

// Verify reports whether token matches the configured api key.
// An empty api key matches nothing.
func Verify(apiKey, token string) bool {
	if apiKey == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(apiKey), []byte(token)) == 1
}

// APIKey returns a middleware that rejects requests without a valid apikey header.
// Paths in skip are served without a key in addition to the public paths.
func APIKey(config core.Config, skip ...string) echo.MiddlewareFunc {
	skipped := make(map[string]bool, len(publicPaths)+len(skip))
	for _, path := range append(append([]string{}, publicPaths...), skip...) {
		skipped[path] = true
	}

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			return skipped[c.Request().URL.Path]
		},
		KeyLookup: "header:" + core.APIKeyHeader,
		Validator: func(key string, c echo.Context) (bool, error) {
			_, span := tracer.Start(c.Request().Context(), "Auth.Middleware.APIKey")
			defer span.End()

			return Verify(config.APIKey, key), nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "unauthorized"})
		},
	})
}
