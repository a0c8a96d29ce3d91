package submission

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/xid"

	"github.com/ceptorclub/ceptor/core"
)

type service struct {
	repository Repository
}

// NewService creates a new submission service
func NewService(repository Repository) core.SubmissionService {
	return &service{repository: repository}
}

// Create stores a submission. Voters are deduplicated and likes follow them.
func (s *service) Create(ctx context.Context, submission core.Submission) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Service.Create")
	defer span.End()

	submission.Image = strings.TrimSpace(submission.Image)
	if submission.Image == "" {
		return core.Submission{}, core.NewErrorBadRequest("image is required")
	}
	if submission.TokenID < 0 {
		return core.Submission{}, core.NewErrorBadRequest("tokenID must not be negative")
	}
	if submission.ID == "" {
		submission.ID = xid.New().String()
	}

	submission.VoterWallets = uniqueWallets(submission.VoterWallets)
	submission.LikesAmount = int64(len(submission.VoterWallets))

	return s.repository.Create(ctx, submission)
}

// List returns every submission
func (s *service) List(ctx context.Context) ([]core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Service.List")
	defer span.End()

	return s.repository.List(ctx)
}

// MostLiked returns the overall leader
func (s *service) MostLiked(ctx context.Context) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Service.MostLiked")
	defer span.End()

	return s.repository.MostLiked(ctx)
}

// Vote casts one vote of wallet on the submission identified by tokenID
func (s *service) Vote(ctx context.Context, tokenID int64, wallet string) (core.VoteResult, error) {
	ctx, span := tracer.Start(ctx, "Submission.Service.Vote")
	defer span.End()

	wallet = core.NormalizeWallet(wallet)
	if wallet == "" {
		return core.VoteResult{}, core.NewErrorBadRequest("wallet is required")
	}
	if tokenID < 0 {
		return core.VoteResult{}, core.NewErrorBadRequest("tokenID must not be negative")
	}

	modified, err := s.repository.Vote(ctx, tokenID, wallet)
	if err != nil {
		span.RecordError(err)
		if core.ErrorStatus(err) == http.StatusInternalServerError {
			slog.ErrorContext(
				ctx, "failed to vote",
				slog.Int64("tokenID", tokenID),
				slog.String("error", err.Error()),
				slog.String("module", "submission"),
			)
		}
		return core.VoteResult{}, err
	}

	return core.VoteResult{TokenID: tokenID, ModifiedCount: modified}, nil
}

// HighestVoted returns the leader of the given week
func (s *service) HighestVoted(ctx context.Context, weekTimestamp int64) (core.Submission, error) {
	ctx, span := tracer.Start(ctx, "Submission.Service.HighestVoted")
	defer span.End()

	return s.repository.HighestVoted(ctx, weekTimestamp)
}

// Count returns the number of submissions
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Submission.Service.Count")
	defer span.End()

	return s.repository.Count(ctx)
}

func uniqueWallets(wallets []string) []string {
	seen := make(map[string]bool, len(wallets))
	result := make([]string, 0, len(wallets))
	for _, wallet := range wallets {
		wallet = core.NormalizeWallet(wallet)
		if wallet == "" || seen[wallet] {
			continue
		}
		seen[wallet] = true
		result = append(result, wallet)
	}
	return result
}
