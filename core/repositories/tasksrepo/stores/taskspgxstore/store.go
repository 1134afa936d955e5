// Package taskspgxstore implements tasksrepo.Storer on postgres through pgx.
package taskspgxstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/infrastructure/postgresdb"
	"github.com/tasmag/tasmag/sdk/logger"
)

const selectColumns = `id, name, description, created_at, due_date, status`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT ` + selectColumns + `
		FROM tasks
		ORDER BY id`

	return s.query(ctx, query, pgx.NamedArgs{})
}

func (s *Store) Get(ctx context.Context, id int64) (tasksrepo.Task, error) {
	query := `SELECT ` + selectColumns + `
		FROM tasks
		WHERE id = @id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("task %d: %w", id, postgresdb.HandlePgError(err))
	}
	return task, nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (name, description, created_at, due_date, status)
		VALUES (@name, @description, @created_at, @due_date, @status)
		RETURNING id`

	args := pgx.NamedArgs{
		"name":        task.Name,
		"description": task.Description,
		"created_at":  task.CreatedAt,
		"due_date":    task.DueDate,
		"status":      string(task.Status),
	}

	if err := s.pool.QueryRow(ctx, query, args).Scan(&task.ID); err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	return task, nil
}

// Update writes every mutable column. created_at is never touched.
func (s *Store) Update(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query := `UPDATE tasks
		SET name = @name, description = @description, due_date = @due_date, status = @status
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":          task.ID,
		"name":        task.Name,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      string(task.Status),
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return tasksrepo.Task{}, fmt.Errorf("task %d: %w", task.ID, repositories.ErrNotFound)
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = @id)`

	if err := s.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, postgresdb.HandlePgError(err)
	}
	return exists, nil
}

func (s *Store) SearchByName(ctx context.Context, term string) ([]tasksrepo.Task, error) {
	query := `SELECT ` + selectColumns + `
		FROM tasks
		WHERE LOWER(name) LIKE LOWER(@term) ESCAPE '\'
		ORDER BY id`

	return s.query(ctx, query, pgx.NamedArgs{"term": repositories.ContainsPattern(term)})
}

func (s *Store) query(ctx context.Context, query string, args pgx.NamedArgs) ([]tasksrepo.Task, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}
