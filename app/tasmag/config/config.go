// Package config holds the settings and dependencies shared by the tasmag
// server's route groups.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/core/repositories/usersrepo"
	"github.com/tasmag/tasmag/sdk/environment"
	"github.com/tasmag/tasmag/sdk/logger"
	"github.com/tasmag/tasmag/sdk/telemetry"
)

// site wide globals.
const (
	ApiRoute = "/api/v1"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database selects and prepares the backing store.
type Database struct {
	Driver      string `env:"DB_DRIVER" default:"sqlite"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" default:"true"`
}

// LoadDatabase reads Database from prefixed environment variables.
func LoadDatabase(prefix string) (Database, error) {
	var cfg Database
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Database{}, fmt.Errorf("parsing database config: %w", err)
	}

	cfg.Driver = strings.ToLower(cfg.Driver)
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Database{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	return cfg, nil
}

// Repositories are the services exposed over HTTP.
type Repositories struct {
	Tasks *tasksrepo.Repository
	Users *usersrepo.Repository
}

// Tasmag is the overall configuration for the tasmag application.
type Tasmag struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Repositories Repositories
	CORSOrigins  []string

	// StatusCheck reports whether the backing database is reachable.
	StatusCheck func(ctx context.Context) error
}
