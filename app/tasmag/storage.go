package main

import (
	"context"
	"fmt"

	"github.com/tasmag/tasmag/app/tasmag/config"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo/stores/tasksgormstore"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/tasmag/tasmag/core/repositories/usersrepo"
	"github.com/tasmag/tasmag/core/repositories/usersrepo/stores/usersgormstore"
	"github.com/tasmag/tasmag/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/tasmag/tasmag/infrastructure/postgresdb"
	"github.com/tasmag/tasmag/infrastructure/sqlitedb"
	"github.com/tasmag/tasmag/sdk/logger"
)

// storage is the opened database and the repositories built on it.
type storage struct {
	repositories config.Repositories
	statusCheck  func(ctx context.Context) error
	close        func() error
}

func openStorage(ctx context.Context, log *logger.Logger, db config.Database) (storage, error) {
	switch db.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, log, db)
	default:
		return openSQLite(ctx, log, db)
	}
}

func openPostgres(ctx context.Context, log *logger.Logger, db config.Database) (storage, error) {
	pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return storage{}, fmt.Errorf("configuring postgres support: %w", err)
	}

	if db.AutoMigrate {
		if err := postgresdb.Migrate(ctx, pool, log.Logger); err != nil {
			pool.Close()
			return storage{}, fmt.Errorf("migrating postgres: %w", err)
		}
	}

	return storage{
		repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pool)),
			Users: usersrepo.NewRepository(log, userspgxstore.NewStore(log, pool)),
		},
		statusCheck: func(ctx context.Context) error {
			return postgresdb.StatusCheck(ctx, pool)
		},
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openSQLite(ctx context.Context, log *logger.Logger, db config.Database) (storage, error) {
	gdb, err := sqlitedb.NewFromEnv(appName, sqlitedb.WithLogger(log.Logger))
	if err != nil {
		return storage{}, fmt.Errorf("configuring sqlite support: %w", err)
	}

	tasks := tasksgormstore.NewStore(log, gdb)
	users := usersgormstore.NewStore(log, gdb)

	if db.AutoMigrate {
		for _, m := range []interface{ Migrate(context.Context) error }{tasks, users} {
			if err := m.Migrate(ctx); err != nil {
				sqlitedb.Close(gdb)
				return storage{}, fmt.Errorf("migrating sqlite: %w", err)
			}
		}
	}

	return storage{
		repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, tasks),
			Users: usersrepo.NewRepository(log, users),
		},
		statusCheck: func(ctx context.Context) error {
			return sqlitedb.StatusCheck(ctx, gdb)
		},
		close: func() error {
			return sqlitedb.Close(gdb)
		},
	}, nil
}
