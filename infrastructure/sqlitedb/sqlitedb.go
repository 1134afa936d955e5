// Package sqlitedb opens the embedded sqlite database used by the gorm
// stores.
package sqlitedb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tasmag/tasmag/sdk/environment"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB is the handle shared by the gorm stores.
type DB = gorm.DB

// Options represents the exportable database configuration
type Options struct {
	Path          string        `env:"SQLITE_PATH" default:"tasmag.db"`
	LogQueries    bool          `env:"SQLITE_LOG_QUERIES" default:"false"`
	SlowThreshold time.Duration `env:"SQLITE_SLOW_THRESHOLD" default:"200ms"`
}

type options struct {
	path          string
	logQueries    bool
	slowThreshold time.Duration
	logger        *slog.Logger
}

// Option is a function that configures the database options
type Option func(*options)

// WithLogger routes gorm's logging through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPath overrides the database file path.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithLogQueries enables or disables query logging
func WithLogQueries(enable bool) Option {
	return func(o *options) {
		o.logQueries = enable
	}
}

// NewFromEnv opens the database described by the prefixed environment.
func NewFromEnv(prefix string, opts ...Option) (*gorm.DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return newDatabase(cfg, opts...)
}

// NewTestDB opens an empty in-memory database.
func NewTestDB(opts ...Option) (*gorm.DB, error) {
	cfg := Options{
		Path:          MemoryPath,
		SlowThreshold: time.Second,
	}
	return newDatabase(cfg, opts...)
}

func newDatabase(cfg Options, opts ...Option) (*gorm.DB, error) {
	o := &options{
		path:          cfg.Path,
		logQueries:    cfg.LogQueries,
		slowThreshold: cfg.SlowThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.path == "" {
		o.path = MemoryPath
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	level := gormlogger.Warn
	if o.logQueries {
		level = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(o.path), &gorm.Config{
		Logger: gormlogger.New(slogWriter{log: o.logger}, gormlogger.Config{
			SlowThreshold:             o.slowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", o.path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	// sqlite allows a single writer, and every :memory: connection is a
	// separate database.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// StatusCheck returns nil if it can successfully talk to the database
func StatusCheck(ctx context.Context, db *gorm.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// slogWriter adapts slog to gorm's printf style logger.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	msg := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " ")
	w.log.Info(msg, "component", "gorm")
}
