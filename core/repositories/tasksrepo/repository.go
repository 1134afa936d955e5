// Package tasksrepo provides the task service layer over a Storer.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/sdk/logger"
)

// Storer defines the data storage interface for Task. Get, Update and
// Delete return repositories.ErrNotFound when no row matches.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id int64) (Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	SearchByName(ctx context.Context, term string) ([]Task, error)
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
	}
}

// List returns every task in the store's natural order.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	return records, nil
}

// GetByID returns the task with id or an error wrapping
// repositories.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (Task, error) {
	record, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository get by id %d: %w", id, err)
	}
	return record, nil
}

// Create stores a new task built by New.
func (r *Repository) Create(ctx context.Context, nt NewTask) (Task, error) {
	record, err := r.storer.Create(ctx, New(nt, r.now()))
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "created task", "id", record.ID, "status", record.Status)
	return record, nil
}

// Update replaces the mutable fields of the task stored under id. Nothing is
// written when no such task exists.
func (r *Repository) Update(ctx context.Context, id int64, ut UpdateTask) (Task, error) {
	existing, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository update %d: %w", id, err)
	}

	record, err := r.storer.Update(ctx, existing.Apply(ut))
	if err != nil {
		return Task{}, fmt.Errorf("task repository update %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "updated task", "id", record.ID, "status", record.Status)
	return record, nil
}

// Delete permanently removes the task stored under id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	exists, err := r.storer.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("task repository delete %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("task repository delete %d: %w", id, repositories.ErrNotFound)
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("task repository delete %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "deleted task", "id", id)
	return nil
}

// Exists reports whether a task is stored under id.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := r.storer.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("task repository exists %d: %w", id, err)
	}
	return exists, nil
}

// SearchByName returns tasks whose name contains term, ignoring case.
func (r *Repository) SearchByName(ctx context.Context, term string) ([]Task, error) {
	records, err := r.storer.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("task repository search %q: %w", term, err)
	}
	return records, nil
}

// IsNotFound reports whether err means the task does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
