package commands

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/tasmag/tasmag/infrastructure/sqlitedb"
	"github.com/tasmag/tasmag/sdk/logger"
)

func TestMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasmag.db")
	t.Setenv("TOOLTEST_DB_DRIVER", "sqlite")
	t.Setenv("TOOLTEST_SQLITE_PATH", path)

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	if err := Migrate(context.Background(), log, "TOOLTEST", nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Running again is a no-op.
	if err := Migrate(context.Background(), log, "TOOLTEST", nil); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	db, err := sqlitedb.NewFromEnv("TOOLTEST")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlitedb.Close(db)

	for _, table := range []string{"tasks", "users"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestMigrateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("TOOLTEST_DB_DRIVER", "oracle")

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	if err := Migrate(context.Background(), log, "TOOLTEST", nil); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestMigrateSQLitePathFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flag.db")
	t.Setenv("TOOLTEST_DB_DRIVER", "sqlite")
	t.Setenv("TOOLTEST_SQLITE_PATH", filepath.Join(t.TempDir(), "env.db"))

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	if err := Migrate(context.Background(), log, "TOOLTEST", []string{"-path", path, "-log-queries"}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := sqlitedb.NewFromEnv("TOOLTEST", sqlitedb.WithPath(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlitedb.Close(db)

	if !db.Migrator().HasTable("tasks") {
		t.Error("flag path was not migrated")
	}
}

func TestParseMigrateFlags(t *testing.T) {
	f, err := parseMigrateFlags([]string{"-url", "postgres://db/tasmag", "-connect-timeout", "3s"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.url != "postgres://db/tasmag" {
		t.Errorf("url = %q", f.url)
	}
	if f.connectTimeout != 3*time.Second {
		t.Errorf("connect timeout = %v", f.connectTimeout)
	}
	if f.logQueries || f.path != "" {
		t.Errorf("unexpected defaults: %+v", f)
	}

	if _, err := parseMigrateFlags([]string{"-bogus"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestMigratePostgresUnreachable(t *testing.T) {
	t.Setenv("TOOLTEST_DB_DRIVER", "postgres")

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	args := []string{"-url", "postgres://nobody@127.0.0.1:1/none?sslmode=disable", "-connect-timeout", "500ms"}
	if err := Migrate(context.Background(), log, "TOOLTEST", args); err == nil {
		t.Error("expected connection error")
	}
}
