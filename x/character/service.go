package character

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/ceptorclub/ceptor/core"
)

type service struct {
	repo Repository
}

// NewService is for wire.go
func NewService(repo Repository) core.CharacterService {
	return &service{repo: repo}
}

// Create stores a new character owned by a wallet
func (s *service) Create(ctx context.Context, character core.CharacterData) (core.CharacterData, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	character.Name = strings.TrimSpace(character.Name)
	character.OwnerWallet = core.NormalizeWallet(character.OwnerWallet)
	if character.Name == "" {
		return core.CharacterData{}, core.NewErrorBadRequest("name is required")
	}
	if character.OwnerWallet == "" {
		return core.CharacterData{}, core.NewErrorBadRequest("ownerWallet is required")
	}
	if character.ID == "" {
		character.ID = xid.New().String()
	}

	created, err := s.repo.Create(ctx, character)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create character", slog.String("error", err.Error()), slog.String("module", "character"))
		return core.CharacterData{}, err
	}
	return created, nil
}

// GetByID returns a character by ID
func (s *service) GetByID(ctx context.Context, id string) (core.CharacterData, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.GetByID")
	defer span.End()

	return s.repo.GetByID(ctx, id)
}

// List returns every character
func (s *service) List(ctx context.Context) ([]core.CharacterData, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.List")
	defer span.End()

	return s.repo.List(ctx)
}

// Count returns the number of characters
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}
