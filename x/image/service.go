// Package image relays image requests to the retrieval service with a memcached cache
package image

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/sha3"

	"github.com/ceptorclub/ceptor/client"
	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("image")

// ErrNoEndpoint is returned when no image endpoint is configured
var ErrNoEndpoint = errors.New("image endpoint is not configured")

type service struct {
	client client.Client
	mc     *memcache.Client
	config core.Config
}

// NewService creates an image service. A nil mc disables caching.
func NewService(client client.Client, mc *memcache.Client, config core.Config) core.ImageService {
	return &service{client: client, mc: mc, config: config}
}

func cacheKey(payload json.RawMessage) string {
	sum := sha3.Sum256(payload)
	return "image:" + hex.EncodeToString(sum[:])
}

// Fetch returns the image service answer for payload
func (s *service) Fetch(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Image.Service.Fetch")
	defer span.End()

	if s.config.Image.Endpoint == "" {
		span.RecordError(ErrNoEndpoint)
		return nil, ErrNoEndpoint
	}

	key := cacheKey(payload)
	if s.mc != nil {
		item, err := s.mc.Get(key)
		if err == nil {
			return item.Value, nil
		}
		if !errors.Is(err, memcache.ErrCacheMiss) {
			slog.WarnContext(ctx, "image cache get failed", slog.String("error", err.Error()), slog.String("module", "image"))
		}
	}

	result, err := s.client.RetrieveImage(ctx, s.config.Image.Endpoint, payload, s.config.Image.TimeoutDuration())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.mc != nil {
		err := s.mc.Set(&memcache.Item{Key: key, Value: result, Expiration: s.config.Image.CacheExpiration()})
		if err != nil {
			slog.WarnContext(ctx, "image cache set failed", slog.String("error", err.Error()), slog.String("module", "image"))
		}
	}

	return result, nil
}
