package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"synopsis/internal/api"
	"synopsis/internal/config"
	"synopsis/internal/scheduler"
	"synopsis/internal/storage"
	"synopsis/internal/store"
	"synopsis/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting synopsisd")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Open persistence backend
	backend, err := storage.OpenBolt(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open storage backend: %w", err)
	}
	defer backend.Close()
	logger.Info("Storage backend opened")

	// 4. Load stores. A corrupt document is fatal: starting empty would
	// let the next write destroy the user's data. A plain read failure
	// only logs a warning and the store starts empty.
	contentStore := store.New(backend, logger)
	if err := contentStore.Load(); err != nil {
		if errors.Is(err, store.ErrCorrupted) {
			return fmt.Errorf("failed to load content: %w", err)
		}
		logger.WithError(err).Warn("Failed to read content, starting empty")
	}

	collectionStore := store.NewCollections(backend, logger)
	if err := collectionStore.Load(); err != nil {
		if errors.Is(err, store.ErrCorrupted) {
			return fmt.Errorf("failed to load collections: %w", err)
		}
		logger.WithError(err).Warn("Failed to read collections, starting empty")
	}

	// 5. Initialize scheduler
	sched := scheduler.NewScheduler(
		contentStore,
		backend,
		cfg.BackupEnabled,
		cfg.BackupCron,
		cfg.BackupDir,
		cfg.BackupKeep,
		logger,
	)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, contentStore, collectionStore, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("synopsisd is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("synopsisd stopped")
	return nil
}
