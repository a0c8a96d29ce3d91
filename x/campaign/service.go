package campaign

import (
	"context"
	"strings"

	"github.com/rs/xid"

	"github.com/ceptorclub/ceptor/core"
)

type service struct {
	repository Repository
}

// NewService creates a new campaign service
func NewService(repository Repository) core.CampaignService {
	return &service{repository: repository}
}

// Create stores the availability of a game master
func (s *service) Create(ctx context.Context, campaign core.Campaign) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.Create")
	defer span.End()

	campaign.NameOfCampaign = strings.TrimSpace(campaign.NameOfCampaign)
	campaign.GMWallet = core.NormalizeWallet(campaign.GMWallet)
	if campaign.NameOfCampaign == "" {
		return core.Campaign{}, core.NewErrorBadRequest("nameOfCampaign is required")
	}
	if campaign.GMWallet == "" {
		return core.Campaign{}, core.NewErrorBadRequest("gmWallet is required")
	}
	if campaign.ID == "" {
		campaign.ID = xid.New().String()
	}

	seen := make(map[string]bool, len(campaign.PCWallets))
	participants := make([]string, 0, len(campaign.PCWallets))
	for _, wallet := range campaign.PCWallets {
		wallet = core.NormalizeWallet(wallet)
		if wallet == "" || seen[wallet] {
			continue
		}
		seen[wallet] = true
		participants = append(participants, wallet)
	}
	campaign.PCWallets = participants
	if campaign.AvailableTimes == nil {
		campaign.AvailableTimes = core.TimeSlots{}
	}

	return s.repository.Create(ctx, campaign)
}

// List returns every campaign
func (s *service) List(ctx context.Context) ([]core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.List")
	defer span.End()

	return s.repository.List(ctx)
}

// GetByID returns a campaign by ID
func (s *service) GetByID(ctx context.Context, id string) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.GetByID")
	defer span.End()

	return s.repository.GetByID(ctx, id)
}

// Join adds a participant wallet to the campaign
func (s *service) Join(ctx context.Context, id, wallet string) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.Join")
	defer span.End()

	wallet = core.NormalizeWallet(wallet)
	if wallet == "" {
		return core.Campaign{}, core.NewErrorBadRequest("wallet is required")
	}

	return s.repository.Join(ctx, id, wallet)
}

// Count returns the number of campaigns
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Service.Count")
	defer span.End()

	return s.repository.Count(ctx)
}
