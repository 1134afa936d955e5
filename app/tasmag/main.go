package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/tasmag/tasmag/app/tasmag/config"
	"github.com/tasmag/tasmag/app/tasmag/home"
	"github.com/tasmag/tasmag/bridge/repositories/tasksrepobridge"
	"github.com/tasmag/tasmag/bridge/repositories/usersrepobridge"
	"github.com/tasmag/tasmag/bridge/scaffolding/mid"
	"github.com/tasmag/tasmag/infrastructure/web"
	"github.com/tasmag/tasmag/sdk/environment"
	"github.com/tasmag/tasmag/sdk/logger"
	"github.com/tasmag/tasmag/sdk/telemetry"
)

var build = "develop"
var appName = "TASMAG"

func main() {
	environment.LoadEnv()
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName,
		logger.WithService("tasmag"),
		logger.WithTraceIDFn(tel.GetTraceID),
	)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// DATABASES
	dbCfg, err := config.LoadDatabase(appName)
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, log, dbCfg)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "init", "service", "database", "driver", dbCfg.Driver)

	// WEB
	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		store.close()
		return fmt.Errorf("webserver: %w", err)
	}

	siteCfg := config.Tasmag{
		Build:        build,
		Logger:       log,
		Telemetry:    tel,
		Repositories: store.repositories,
		CORSOrigins:  webCfg.CORSOrigins,
		StatusCheck:  store.statusCheck,
	}

	server := web.NewWebServer(webCfg,
		web.WithHandler(webHandler(siteCfg)),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, webCfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"tasmag": func(ctx context.Context) error {
			log.InfoContext(ctx, "shutdown", "status", "shutdown started")
			defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete")

			serverErr := server.Shutdown(ctx)
			if serverErr != nil {
				server.Close()
			}

			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			return errors.Join(serverErr, store.close())
		},
	})

	select {
	case err := <-serverErrors:
		store.close()
		return fmt.Errorf("server error: %w", err)

	case code := <-wait:
		if code != 0 {
			return fmt.Errorf("could not stop server gracefully: exit code %d", code)
		}
	}

	return nil
}

func webHandler(cfg config.Tasmag) http.Handler {
	// INITIALIZATION
	wh := web.NewWebHandler(
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithCORS(cfg.CORSOrigins),
		web.WithDefaultHeaders(map[string]string{
			"X-Content-Type-Options": "nosniff",
			"Cache-Control":          "no-store",
		}),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	// HOME
	home.AddHandlers(wh, home.Config{
		Log:         cfg.Logger,
		StatusCheck: cfg.StatusCheck,
	})

	// API
	tasksrepobridge.AddHttpRoutes(wh.Group(config.ApiRoute), tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	// USERS
	usersrepobridge.AddHttpRoutes(wh.Group(""), usersrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Users,
	})

	// DEBUG
	wh.HandleRaw("GET /debug/vars", expvar.Handler())

	return wh
}
