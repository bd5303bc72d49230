// Package bootstrap recovers the local player's identity from the log
// history written before the tail started.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yertz/yapr/internal/linesource"
	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

// Result summarises a finished scan.
type Result struct {
	Lines      int
	Detections int
	Identity   core.Identity
	Duration   time.Duration
}

// Scan reads the whole log at path and feeds every identity line to the
// model as a history detection. Live detections made while the scan runs
// take precedence.
func Scan(ctx context.Context, path string, m *world.Model, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	m.AddEvent(core.EventInfo, "[SYSTEM] Scanning log file for player name and game version...")

	var res Result
	err := linesource.Scan(ctx, path, func(line string) bool {
		res.Lines++
		match, ok := parser.DetectIdentity(line)
		if !ok {
			return true
		}
		res.Detections++
		m.ResolveIdentity(match.Candidate(m.Identity(), line), world.SourceHistory)
		return true
	})
	res.Identity = m.Identity()
	res.Duration = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("identity scan failed: %w", err)
	}

	logger.Info("Identity scan complete",
		"lines", res.Lines,
		"detections", res.Detections,
		"player", res.Identity.PlayerName,
		"version", res.Identity.GameVersion,
		"duration", res.Duration)
	return res, nil
}
