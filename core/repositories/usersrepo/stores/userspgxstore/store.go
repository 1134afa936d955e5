// Package userspgxstore implements usersrepo.Storer on postgres through pgx.
package userspgxstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/core/repositories/usersrepo"
	"github.com/tasmag/tasmag/infrastructure/postgresdb"
	"github.com/tasmag/tasmag/sdk/logger"
)

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

func (s *Store) List(ctx context.Context) ([]usersrepo.User, error) {
	query := `SELECT id, username, email, password
		FROM users
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return users, nil
}

func (s *Store) Get(ctx context.Context, id int64) (usersrepo.User, error) {
	query := `SELECT id, username, email, password
		FROM users
		WHERE id = @id`

	return s.one(ctx, query, pgx.NamedArgs{"id": id})
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT id, username, email, password
		FROM users
		WHERE email = @email
		ORDER BY id
		LIMIT 1`

	return s.one(ctx, query, pgx.NamedArgs{"email": email})
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) (usersrepo.User, error) {
	query := `INSERT INTO users (username, email, password)
		VALUES (@username, @email, @password)
		RETURNING id`

	args := pgx.NamedArgs{
		"username": user.Username,
		"email":    user.Email,
		"password": user.Password,
	}

	if err := s.pool.QueryRow(ctx, query, args).Scan(&user.ID); err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	return user, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = @id)`

	if err := s.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, postgresdb.HandlePgError(err)
	}
	return exists, nil
}

func (s *Store) one(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, fmt.Errorf("user: %w", postgresdb.HandlePgError(err))
	}
	return user, nil
}
