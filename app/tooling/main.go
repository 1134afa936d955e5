package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tasmag/tasmag/app/tooling/commands"
	"github.com/tasmag/tasmag/sdk/environment"
	"github.com/tasmag/tasmag/sdk/logger"
)

var build = "develop"
var appName = "TASMAG"

func processCommands(ctx context.Context, log *logger.Logger, command string, args []string) error {
	switch command {
	case "migrate":
		log.InfoContextf(ctx, "running %s", command)
		if err := commands.Migrate(ctx, log, appName, args); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate        - create the schema in the database selected by TASMAG_DB_DRIVER")
	fmt.Println("                   flags: -url, -path, -connect-timeout, -log-queries")
	fmt.Println()
	fmt.Println("Use 'go run ./app/tooling <command>'.")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)
	// Parse command from arguments
	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Show help and exit early if requested
	if command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}
	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Process commands in a goroutine to allow for graceful shutdown
	done := make(chan error, 1)
	go func() {
		// Pass remaining args (everything after the command)
		args := []string{}
		if len(os.Args) > 2 {
			args = os.Args[2:]
		}
		done <- processCommands(ctx, log, command, args)
	}()

	// Handle shutdown
	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)

		// Give a short time for commands to complete
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		// Wait for command to complete or timeout
		select {
		case err := <-done:
			return err
		case <-shutdownCtx.Done():
			return fmt.Errorf("shutdown timeout: %w", shutdownCtx.Err())
		}
	}

}

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName,
		logger.WithFormat("text"),
		logger.WithOutput(os.Stderr),
	)
	if err != nil {
		log = logger.NewDefault(logger.WithFormat("text"))
		log.Error("logger config invalid, using defaults", "err", err)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
