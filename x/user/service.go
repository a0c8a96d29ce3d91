package user

import (
	"context"

	"github.com/rs/xid"

	"github.com/ceptorclub/ceptor/core"
)

type service struct {
	repository Repository
}

// NewService creates a new user service
func NewService(repository Repository) core.UserService {
	return &service{repository: repository}
}

// Create registers a user. The wallet is required and must be unique.
func (s *service) Create(ctx context.Context, user core.User) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.Create")
	defer span.End()

	user.Wallet = core.NormalizeWallet(user.Wallet)
	if user.Wallet == "" {
		return core.User{}, core.NewErrorBadRequest("wallet is required")
	}
	if user.ID == "" {
		user.ID = xid.New().String()
	}

	return s.repository.Create(ctx, user)
}

// GetByWallet returns a user by wallet address
func (s *service) GetByWallet(ctx context.Context, wallet string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.GetByWallet")
	defer span.End()

	wallet = core.NormalizeWallet(wallet)
	if wallet == "" {
		return core.User{}, core.NewErrorBadRequest("wallet is required")
	}

	return s.repository.GetByWallet(ctx, wallet)
}

// GetByID returns a user by ID
func (s *service) GetByID(ctx context.Context, id string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.GetByID")
	defer span.End()

	return s.repository.GetByID(ctx, id)
}

// List returns every user
func (s *service) List(ctx context.Context) ([]core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Service.List")
	defer span.End()

	return s.repository.List(ctx)
}

// Count returns the number of users
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "User.Service.Count")
	defer span.End()

	return s.repository.Count(ctx)
}
