// Package agent runs some scheduled tasks
package agent

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/ceptorclub/ceptor/core"
)

var tracer = otel.Tracer("agent")

const refreshInterval = 15 * time.Second

type agent struct {
	user       core.UserService
	character  core.CharacterService
	submission core.SubmissionService
	campaign   core.CampaignService
	socket     core.SocketManager
}

// NewAgent creates a new agent
func NewAgent(
	user core.UserService,
	character core.CharacterService,
	submission core.SubmissionService,
	campaign core.CampaignService,
	socket core.SocketManager,
) core.AgentService {
	return &agent{
		user,
		character,
		submission,
		campaign,
		socket,
	}
}

// Boot starts agent. Tasks stop when ctx is done.
func (a *agent) Boot(ctx context.Context) {
	slog.Info("agent start!", slog.String("module", "agent"))

	ticker := time.NewTicker(refreshInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ctx, span := tracer.Start(ctx, "Agent.Boot.RefreshMetrics")
				a.refreshMetrics(ctx)
				span.End()
			}
		}
	}()
}
