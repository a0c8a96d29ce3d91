//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package submission

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ceptorclub/ceptor/core"
)

// Repository stores submissions and the votes cast on them
type Repository interface {
	Create(ctx context.Context, submission core.Submission) (core.Submission, error)
	List(ctx context.Context) ([]core.Submission, error)
	GetByTokenID(ctx context.Context, tokenID int64) (core.Submission, error)
	MostLiked(ctx context.Context) (core.Submission, error)
	Vote(ctx context.Context, tokenID int64, wallet string) (int64, error)
	HighestVoted(ctx context.Context, weekTimestamp int64) (core.Submission, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a new submission repository
func NewRepository(db *gorm.DB, config core.Config) Repository {
	return &repository{db: db, table: config.Collections.WithDefaults().Submissions}
}

// Create inserts a new submission
func (r *repository) Create(ctx context.Context, submission core.Submission) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Table(r.table).Create(&submission).Error; err != nil {
		span.RecordError(err)
		if core.IsDuplicateKey(err) {
			return core.Submission{}, core.NewErrorAlreadyExists()
		}
		return core.Submission{}, pkgerrors.Wrap(err, "failed to create submission")
	}
	return submission, nil
}

// List returns every submission ordered by token
func (r *repository) List(ctx context.Context) ([]core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.List")
	defer span.End()

	var submissions []core.Submission
	if err := r.db.WithContext(ctx).Table(r.table).Order("token_id ASC").Find(&submissions).Error; err != nil {
		span.RecordError(err)
		return []core.Submission{}, pkgerrors.Wrap(err, "failed to list submissions")
	}
	if submissions == nil {
		return []core.Submission{}, nil
	}
	return submissions, nil
}

// GetByTokenID returns a submission by its token
func (r *repository) GetByTokenID(ctx context.Context, tokenID int64) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.GetByTokenID")
	defer span.End()

	var submission core.Submission
	err := r.db.WithContext(ctx).Table(r.table).Where("token_id = ?", tokenID).Take(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Submission{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Submission{}, pkgerrors.Wrap(err, "failed to get submission")
	}
	return submission, nil
}

// MostLiked returns the submission with the most likes. Ties go to the lowest token.
func (r *repository) MostLiked(ctx context.Context) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.MostLiked")
	defer span.End()

	var submission core.Submission
	err := r.db.WithContext(ctx).
		Table(r.table).
		Order("likes_amount DESC").
		Order("token_id ASC").
		Take(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Submission{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Submission{}, pkgerrors.Wrap(err, "failed to get most liked submission")
	}
	return submission, nil
}

// Vote records a vote of wallet on the submission.
// The membership check and the increment are one statement.
func (r *repository) Vote(ctx context.Context, tokenID int64, wallet string) (int64, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.Vote")
	defer span.End()

	result := r.db.WithContext(ctx).
		Table(r.table).
		Where("token_id = ? AND NOT (?::text = ANY(voter_wallets))", tokenID, wallet).
		Updates(map[string]any{
			"voter_wallets": gorm.Expr("array_append(voter_wallets, ?::text)", wallet),
			"likes_amount":  gorm.Expr("likes_amount + 1"),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		return 0, pkgerrors.Wrap(result.Error, "failed to vote")
	}

	if result.RowsAffected == 0 {
		_, err := r.GetByTokenID(ctx, tokenID)
		if err != nil {
			return 0, err
		}
		return 0, core.NewErrorAlreadyExists()
	}

	return result.RowsAffected, nil
}

// HighestVoted returns the most liked submission of a week. Ties go to the lowest token.
func (r *repository) HighestVoted(ctx context.Context, weekTimestamp int64) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.HighestVoted")
	defer span.End()

	var submission core.Submission
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("week_timestamp = ?", weekTimestamp).
		Order("likes_amount DESC").
		Order("token_id ASC").
		Take(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Submission{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Submission{}, pkgerrors.Wrap(err, "failed to get highest voted submission")
	}
	return submission, nil
}

// Count returns the number of submissions
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Submission.Repository.Count")
	defer span.End()

	var count int64
	if err := r.db.WithContext(ctx).Table(r.table).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, pkgerrors.Wrap(err, "failed to count submissions")
	}
	return count, nil
}
