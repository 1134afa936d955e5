// Package usersrepo provides the user service layer over a Storer.
package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/sdk/logger"
)

// Storer defines the data storage interface for User. Get, GetByEmail and
// Delete return repositories.ErrNotFound when no row matches.
type Storer interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repository list: %w", err)
	}
	return records, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (User, error) {
	record, err := r.storer.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("user repository get by id %d: %w", id, err)
	}
	return record, nil
}

// GetByEmail returns the lowest-id user registered with email. Email is
// compared exactly.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	record, err := r.storer.GetByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("user repository get by email: %w", err)
	}
	return record, nil
}

func (r *Repository) Create(ctx context.Context, nu NewUser) (User, error) {
	record, err := r.storer.Create(ctx, New(nu))
	if err != nil {
		return User{}, fmt.Errorf("user repository create: %w", err)
	}

	r.log.InfoContext(ctx, "created user", "id", record.ID)
	return record, nil
}

// Delete permanently removes the user stored under id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	exists, err := r.storer.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("user repository delete %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("user repository delete %d: %w", id, repositories.ErrNotFound)
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("user repository delete %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "deleted user", "id", id)
	return nil
}

func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := r.storer.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("user repository exists %d: %w", id, err)
	}
	return exists, nil
}

// IsNotFound reports whether err means the user does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
