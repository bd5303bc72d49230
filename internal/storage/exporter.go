package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yertz/yapr/pkg/core"
)

// Source is the world state the exporter reads from and reports back to.
type Source interface {
	Export() core.Export
	LoadCounters(e core.Export)
	RecordExport(target string, err error)
}

// Exporter moves the session summary between a Source and a Backend.
type Exporter struct {
	backend Backend
	source  Source
	log     zerolog.Logger
}

// NewExporter creates an exporter.
func NewExporter(backend Backend, source Source, log zerolog.Logger) *Exporter {
	return &Exporter{backend: backend, source: source, log: log}
}

// Restore loads the persisted summary into the source. On a read failure
// the source starts from zero and the error is returned for logging.
func (x *Exporter) Restore() error {
	e, err := x.backend.Load()
	if err != nil || e == nil {
		x.source.LoadCounters(core.EmptyExport())
		if err == nil {
			return nil
		}
		x.log.Warn().Err(err).Msg("Failed to load saved data, starting from zero")
		return fmt.Errorf("failed to load saved data: %w", err)
	}
	x.source.LoadCounters(*e)
	x.log.Info().
		Int("playerKills", e.PlayerKills).
		Int("npcKills", e.NPCKills).
		Msg("Loaded saved data")
	return nil
}

// Flush saves the current summary and reports the outcome to the source.
func (x *Exporter) Flush() error {
	start := time.Now()
	e := x.source.Export()
	err := x.backend.Save(&e)
	target := Target(x.backend)
	x.source.RecordExport(target, err)
	if err != nil {
		x.log.Error().Err(err).Str("target", target).Msg("Failed to save data")
		return err
	}
	x.log.Debug().Str("target", target).Dur("duration", time.Since(start)).Msg("Saved data")
	return nil
}

// Run flushes every interval and whenever a request arrives, until ctx is
// done. Failed flushes are reported and do not stop the loop.
func (x *Exporter) Run(ctx context.Context, interval time.Duration, requests <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = x.Flush()
		case <-requests:
			_ = x.Flush()
		}
	}
}
