//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package campaign

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ceptorclub/ceptor/core"
)

// Repository is the interface for campaign repository
type Repository interface {
	Create(ctx context.Context, campaign core.Campaign) (core.Campaign, error)
	List(ctx context.Context) ([]core.Campaign, error)
	GetByID(ctx context.Context, id string) (core.Campaign, error)
	Join(ctx context.Context, id, wallet string) (core.Campaign, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a new campaign repository
func NewRepository(db *gorm.DB, config core.Config) Repository {
	return &repository{db: db, table: config.Collections.WithDefaults().Campaigns}
}

// Create inserts a new campaign
func (r *repository) Create(ctx context.Context, campaign core.Campaign) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Repository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Table(r.table).Create(&campaign).Error; err != nil {
		span.RecordError(err)
		if core.IsDuplicateKey(err) {
			return core.Campaign{}, core.NewErrorAlreadyExists()
		}
		return core.Campaign{}, pkgerrors.Wrap(err, "failed to create campaign")
	}
	return campaign, nil
}

// List returns every campaign
func (r *repository) List(ctx context.Context) ([]core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Repository.List")
	defer span.End()

	var campaigns []core.Campaign
	if err := r.db.WithContext(ctx).Table(r.table).Order("c_date ASC, id ASC").Find(&campaigns).Error; err != nil {
		span.RecordError(err)
		return []core.Campaign{}, pkgerrors.Wrap(err, "failed to list campaigns")
	}
	if campaigns == nil {
		return []core.Campaign{}, nil
	}
	return campaigns, nil
}

// GetByID returns a campaign by ID
func (r *repository) GetByID(ctx context.Context, id string) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Repository.GetByID")
	defer span.End()

	var campaign core.Campaign
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Take(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Campaign{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Campaign{}, pkgerrors.Wrap(err, "failed to get campaign")
	}
	return campaign, nil
}

// Join adds wallet to the participants. Joining twice is a no-op.
func (r *repository) Join(ctx context.Context, id, wallet string) (core.Campaign, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Repository.Join")
	defer span.End()

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("id = ? AND NOT (?::text = ANY(pc_wallets))", id, wallet).
		Update("pc_wallets", gorm.Expr("array_append(pc_wallets, ?::text)", wallet)).Error
	if err != nil {
		span.RecordError(err)
		return core.Campaign{}, pkgerrors.Wrap(err, "failed to join campaign")
	}

	return r.GetByID(ctx, id)
}

// Count returns the number of campaigns
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Campaign.Repository.Count")
	defer span.End()

	var count int64
	if err := r.db.WithContext(ctx).Table(r.table).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, pkgerrors.Wrap(err, "failed to count campaigns")
	}
	return count, nil
}
