//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 8 << 20
)

var tracer = otel.Tracer("client")

// Client talks to the external image retrieval service
type Client interface {
	RetrieveImage(ctx context.Context, endpoint string, payload json.RawMessage, timeout time.Duration) (json.RawMessage, error)
}

type client struct {
	transport http.RoundTripper
}

func NewClient() Client {
	return &client{transport: otelhttp.NewTransport(http.DefaultTransport)}
}

// RetrieveImage posts the payload to endpoint and returns the json body of the answer
func (c *client) RetrieveImage(ctx context.Context, endpoint string, payload json.RawMessage, timeout time.Duration) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Client.RetrieveImage")
	defer span.End()

	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Transport: c.transport, Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("status", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(body) > maxBodySize {
		err := fmt.Errorf("image service response too large")
		span.RecordError(err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("image service returned %d", resp.StatusCode)
		span.RecordError(err)
		return nil, err
	}

	if !json.Valid(body) {
		err := fmt.Errorf("image service returned invalid json")
		span.RecordError(err)
		return nil, err
	}

	return body, nil
}
