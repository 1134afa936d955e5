// Package commands holds the tooling subcommands.
package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/tasmag/tasmag/app/tasmag/config"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo/stores/tasksgormstore"
	"github.com/tasmag/tasmag/core/repositories/usersrepo/stores/usersgormstore"
	"github.com/tasmag/tasmag/infrastructure/postgresdb"
	"github.com/tasmag/tasmag/infrastructure/sqlitedb"
	"github.com/tasmag/tasmag/sdk/logger"
)

// migrateFlags override the prefixed environment for a single run.
type migrateFlags struct {
	url            string
	path           string
	connectTimeout time.Duration
	logQueries     bool
}

func parseMigrateFlags(args []string) (migrateFlags, error) {
	var f migrateFlags

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.StringVar(&f.url, "url", "", "Postgres connection URL (overrides PG_DATABASE_URL)")
	fs.StringVar(&f.path, "path", "", "SQLite database file (overrides SQLITE_PATH)")
	fs.DurationVar(&f.connectTimeout, "connect-timeout", 10*time.Second, "Postgres connect timeout")
	fs.BoolVar(&f.logQueries, "log-queries", false, "Log every statement the migration runs")

	if err := fs.Parse(args); err != nil {
		return migrateFlags{}, fmt.Errorf("parse flags: %w", err)
	}
	return f, nil
}

// Migrate creates the schema in the database selected by the prefixed
// DB_DRIVER variable.
func Migrate(ctx context.Context, log *logger.Logger, prefix string, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	flags, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	dbCfg, err := config.LoadDatabase(prefix)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "migration started", "driver", dbCfg.Driver)

	switch dbCfg.Driver {
	case config.DriverPostgres:
		err = migratePostgres(ctx, log, prefix, flags)
	default:
		err = migrateSQLite(ctx, log, prefix, flags)
	}
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}

func migratePostgres(ctx context.Context, log *logger.Logger, prefix string, flags migrateFlags) error {
	opts := []postgresdb.Option{
		postgresdb.WithLogger(log.Logger),
		postgresdb.WithMaxConns(1),
		postgresdb.WithMinConns(0),
		postgresdb.WithConnectTimeout(flags.connectTimeout),
	}
	if flags.url != "" {
		opts = append(opts, postgresdb.WithDatabaseURL(flags.url))
	}
	if flags.logQueries {
		opts = append(opts, postgresdb.WithLogQueries(true))
	}

	pool, err := postgresdb.NewFromEnv(prefix, opts...)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer pool.Close()

	if err := postgresdb.Migrate(ctx, pool, log.Logger); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func migrateSQLite(ctx context.Context, log *logger.Logger, prefix string, flags migrateFlags) error {
	opts := []sqlitedb.Option{sqlitedb.WithLogger(log.Logger)}
	if flags.path != "" {
		opts = append(opts, sqlitedb.WithPath(flags.path))
	}
	if flags.logQueries {
		opts = append(opts, sqlitedb.WithLogQueries(true))
	}

	db, err := sqlitedb.NewFromEnv(prefix, opts...)
	if err != nil {
		return fmt.Errorf("configuring sqlite support: %w", err)
	}
	defer sqlitedb.Close(db)

	if err := tasksgormstore.NewStore(log, db).Migrate(ctx); err != nil {
		return err
	}
	if err := usersgormstore.NewStore(log, db).Migrate(ctx); err != nil {
		return err
	}
	return nil
}
