//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package character

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ceptorclub/ceptor/core"
)

// Repository is a repository for character objects
type Repository interface {
	Create(ctx context.Context, character core.CharacterData) (core.CharacterData, error)
	GetByID(ctx context.Context, id string) (core.CharacterData, error)
	List(ctx context.Context) ([]core.CharacterData, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db    *gorm.DB
	table string
}

// NewRepository is for wire.go
func NewRepository(db *gorm.DB, config core.Config) Repository {
	return &repository{db: db, table: config.Collections.WithDefaults().Characters}
}

// Create inserts a new character
func (r *repository) Create(ctx context.Context, character core.CharacterData) (core.CharacterData, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Table(r.table).Create(&character).Error; err != nil {
		span.RecordError(err)
		if core.IsDuplicateKey(err) {
			return core.CharacterData{}, core.NewErrorAlreadyExists()
		}
		return core.CharacterData{}, pkgerrors.Wrap(err, "failed to create character")
	}
	return character, nil
}

// GetByID returns a character by ID
func (r *repository) GetByID(ctx context.Context, id string) (core.CharacterData, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.GetByID")
	defer span.End()

	var character core.CharacterData
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Take(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.CharacterData{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.CharacterData{}, pkgerrors.Wrap(err, "failed to get character")
	}
	return character, nil
}

// List returns every character
func (r *repository) List(ctx context.Context) ([]core.CharacterData, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.List")
	defer span.End()

	var characters []core.CharacterData
	if err := r.db.WithContext(ctx).Table(r.table).Order("c_date ASC, id ASC").Find(&characters).Error; err != nil {
		span.RecordError(err)
		return []core.CharacterData{}, pkgerrors.Wrap(err, "failed to list characters")
	}
	if characters == nil {
		return []core.CharacterData{}, nil
	}
	return characters, nil
}

// Count returns the number of characters
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Count")
	defer span.End()

	var count int64
	if err := r.db.WithContext(ctx).Table(r.table).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, pkgerrors.Wrap(err, "failed to count characters")
	}
	return count, nil
}
