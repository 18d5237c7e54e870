package main

import (
	"context"
	"docsync/contract"
	"docsync/infrastructure/transport"
	"docsync/internal"
	"docsync/observability"
	"docsync/runtime"
	"docsync/runtime/workers"
	"docsync/storage"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Broker terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and manages the broker lifecycle. Keeping
// it apart from main ensures deferred cleanup (like the database close) runs
// before the process exits, and keeps the wiring testable.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage collaborator
	var backend contract.Backend
	switch config.StorageBackend {
	case "badger":
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath))
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			// Defer ensures the database lock is released and buffers are flushed before the function returns.
			logger.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		backend = storage.NewBadgerBackend(db)
	default:
		backend = storage.NewDiskBackend(config.FilesDir)
	}
	if err := backend.EnsureRoot(); err != nil {
		return exitRuntime, err
	}

	// 3. Session layer
	store := storage.NewDocumentStore(backend, logger)
	monitor := observability.NewMonitor(logger)
	registry := runtime.NewRegistry(logger)
	monitor.SessionsFn = registry.Count
	router := runtime.NewRouter(registry, monitor, logger)

	if config.DebugPort > 0 {
		logger.Info("Debug stats endpoint available",
			"url", fmt.Sprintf("http://localhost:%d/stats", config.DebugPort))
		internal.StartDebugServer(config.DebugPort, "/stats", func() any { return monitor.Stats() }, logger)
	}

	// 4. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Transports under supervision
	tcpServer := transport.NewTCPServer(config.TCPAddr, registry, router, store, monitor, logger)
	if err := tcpServer.Listen(); err != nil {
		return exitRuntime, err
	}

	sup := workers.NewSupervisor(logger)
	sup.Add(tcpServer, workers.NewTelemetryWorker(logger, monitor, config.MetricInterval))
	if config.WSAddr != "" {
		sup.Add(transport.NewWSServer(config.WSAddr, registry, router, store, monitor, logger))
	}

	logger.Info("Starting broker",
		"tcp", tcpServer.Addr(), "ws", config.WSAddr, "backend", config.StorageBackend)
	sup.Run(ctx)

	logger.Info("Broker stopped cleanly")
	return exitOK, nil
}
