//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package user

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ceptorclub/ceptor/core"
)

// Repository is the interface for user repository
type Repository interface {
	Create(ctx context.Context, user core.User) (core.User, error)
	GetByWallet(ctx context.Context, wallet string) (core.User, error)
	GetByID(ctx context.Context, id string) (core.User, error)
	List(ctx context.Context) ([]core.User, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB, config core.Config) Repository {
	return &repository{db: db, table: config.Collections.WithDefaults().Users}
}

// Create inserts a new user
func (r *repository) Create(ctx context.Context, user core.User) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.Create")
	defer span.End()

	err := r.db.WithContext(ctx).Table(r.table).Create(&user).Error
	if err != nil {
		span.RecordError(err)
		if core.IsDuplicateKey(err) {
			return core.User{}, core.NewErrorAlreadyExists()
		}
		return core.User{}, pkgerrors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// GetByWallet returns a user by wallet address
func (r *repository) GetByWallet(ctx context.Context, wallet string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.GetByWallet")
	defer span.End()

	var user core.User
	err := r.db.WithContext(ctx).Table(r.table).Where("wallet = ?", wallet).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.User{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.User{}, pkgerrors.Wrap(err, "failed to get user by wallet")
	}

	return user, nil
}

// GetByID returns a user by ID
func (r *repository) GetByID(ctx context.Context, id string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.GetByID")
	defer span.End()

	var user core.User
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.User{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.User{}, pkgerrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// List returns every user
func (r *repository) List(ctx context.Context) ([]core.User, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.List")
	defer span.End()

	var users []core.User
	err := r.db.WithContext(ctx).Table(r.table).Order("c_date ASC, id ASC").Find(&users).Error
	if err != nil {
		span.RecordError(err)
		return []core.User{}, pkgerrors.Wrap(err, "failed to list users")
	}
	if users == nil {
		return []core.User{}, nil
	}

	return users, nil
}

// Count returns the number of users
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "User.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Table(r.table).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, pkgerrors.Wrap(err, "failed to count users")
	}

	return count, nil
}
