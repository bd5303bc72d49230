package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yertz/yapr/internal/config"
	"github.com/yertz/yapr/internal/storage"
)

// initStorage opens the configured backend and restores the saved counters
// into source. A failed restore is logged and the session starts from zero.
func initStorage(cfg config.StorageConfig, source storage.Source, log zerolog.Logger) (storage.Backend, *storage.Exporter, error) {
	backend, err := storage.NewBackend(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	exporter := storage.NewExporter(backend, source, log)
	if err := exporter.Restore(); err != nil {
		Logger.Warn("Starting without saved counters", "error", err)
	}

	_, history := backend.(storage.HistoryRecorder)
	Logger.Info("Storage initialized",
		"type", cfg.Type,
		"target", storage.Target(backend),
		"history", history,
		"exportInterval", cfg.Export)
	return backend, exporter, nil
}
