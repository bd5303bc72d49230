package worker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yertz/yapr/internal/alert"
	"github.com/yertz/yapr/internal/dispatcher"
	"github.com/yertz/yapr/internal/linesource"
	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/internal/queue"
	"github.com/yertz/yapr/internal/storage"
	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

// Internal dispatcher kinds, next to the parser's event kinds.
const (
	KindAlert         = "alert"
	KindRecordKill    = "history:kill"
	KindRecordVehicle = "history:vehicle"
)

// lineTimestampLayout matches the game's own line timestamps.
const lineTimestampLayout = "2006-01-02T15:04:05.000Z"

// runBatch caps how many lines Run takes from the queue per lock.
const runBatch = 256

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	World  *world.Model
	Parser *parser.Parser
	Logger *slog.Logger
	// Alert is optional; without it dungeon alerts are only logged.
	Alert alert.Sink
}

// Manager is the single consumer of game log lines. It owns the normalizer
// and is the only writer of the world model apart from identity bootstrap.
type Manager struct {
	deps       Dependencies
	backend    storage.Backend
	dispatcher *dispatcher.Dispatcher
	normalizer *parser.Normalizer
	flush      chan struct{}
}

// NewManager creates a new worker manager. backend may be nil; when it
// implements storage.HistoryRecorder kills and vehicle changes are recorded.
func NewManager(deps Dependencies, backend storage.Backend) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	m := &Manager{
		deps:    deps,
		backend: backend,
		flush:   make(chan struct{}, 1),
	}
	m.normalizer = parser.NewNormalizer(func() string {
		return deps.World.Now().UTC().Format(lineTimestampLayout)
	})
	return m
}

// FlushRequests delivers a value whenever a kill milestone asks for an
// immediate save. Requests made while one is pending are merged.
func (m *Manager) FlushRequests() <-chan struct{} {
	return m.flush
}

func (m *Manager) requestFlush() {
	select {
	case m.flush <- struct{}{}:
	default:
	}
}

// HandleLine processes one raw line: classify it, apply every event to the
// world and run eviction. It returns the number of events applied.
func (m *Manager) HandleLine(raw string) int {
	now := m.deps.World.Now()
	defer m.deps.World.Evict(now)

	if strings.HasPrefix(raw, linesource.SentinelPrefix) {
		m.deps.World.AddEvent(core.EventError, raw)
		m.deps.Logger.Error("Line source stopped", "line", raw)
		return 0
	}

	line := m.normalizer.Next(raw)
	applied := 0
	for _, ev := range m.deps.Parser.Classify(line) {
		_, err := m.dispatcher.Dispatch(dispatcher.Event{
			Kind:      ev.Kind(),
			Payload:   ev,
			Raw:       line.Raw,
			Short:     line.Short,
			Timestamp: now,
		})
		if err != nil {
			m.deps.Logger.Warn("Failed to apply event", "kind", ev.Kind(), "ts", line.Short, "error", err)
			continue
		}
		applied++
	}
	return applied
}

// Run drains q in arrival order until ctx is done. Lines already queued
// when ctx is cancelled are not processed.
func (m *Manager) Run(ctx context.Context, q *queue.Queue[string]) error {
	if m.dispatcher == nil {
		return errNotRegistered
	}
	for {
		for batch := q.Take(runBatch); len(batch) > 0; batch = q.Take(runBatch) {
			for _, raw := range batch {
				if ctx.Err() != nil {
					return nil
				}
				m.HandleLine(raw)
			}
		}
		if err := q.Wait(ctx); err != nil {
			return nil
		}
	}
}

// Tick runs eviction without a line, so pings expire while the log is quiet.
func (m *Manager) Tick() {
	m.deps.World.Evict(m.deps.World.Now())
}

// RunTicker calls Tick every interval until ctx is done.
func (m *Manager) RunTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}
