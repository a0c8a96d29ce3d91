package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ceptor_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)

	socketConnectionMetrics = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ceptor_socket_connections",
			Help: "socket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(resourceCountMetrics)
	prometheus.MustRegister(socketConnectionMetrics)
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

func (a *agent) refreshMetrics(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "Agent.RefreshMetrics")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resources := []struct {
		name    string
		counter counter
	}{
		{"user", a.user},
		{"character", a.character},
		{"submission", a.submission},
		{"campaign", a.campaign},
	}

	for _, resource := range resources {
		count, err := resource.counter.Count(ctx)
		if err != nil {
			span.RecordError(err)
			slog.ErrorContext(ctx, "failed to count "+resource.name, slog.String("error", err.Error()), slog.String("module", "agent"))
			continue
		}
		resourceCountMetrics.WithLabelValues(resource.name).Set(float64(count))
	}

	socketConnectionMetrics.Set(float64(a.socket.CurrentConnectionCount()))
}
