// Package monitor periodically writes the rendered world state to a
// status file that an overlay or a browser can poll.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/yertz/yapr/internal/render"
	"github.com/yertz/yapr/internal/world"
)

const instrumentationName = "github.com/yertz/yapr/internal/monitor"

// DefaultInterval applies when Dependencies.Interval is zero.
const DefaultInterval = time.Second

// Depth reports how many raw lines wait for the consumer.
type Depth interface {
	Len() int
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	World      *world.Model
	Queue      Depth
	Logger     *slog.Logger
	Palette    render.Palette
	StatusFile string
	Interval   time.Duration
}

// Status is the document written to the status file.
type Status struct {
	render.Frame
	QueueDepth    int     `json:"queueDepth"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// Service manages status monitoring
type Service struct {
	deps    Dependencies
	started time.Time

	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = DefaultInterval
	}
	if deps.Palette.Name == "" {
		deps.Palette = render.DarkPalette
	}
	s := &Service{
		deps:     deps,
		started:  time.Now(),
		stopChan: make(chan struct{}),
	}
	s.registerMetrics()
	return s
}

func (s *Service) registerMetrics() {
	if s.deps.Queue == nil {
		return
	}
	_, err := otel.Meter(instrumentationName).Int64ObservableGauge("yapr.queue.depth",
		metric.WithDescription("Raw log lines waiting for the consumer"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(s.deps.Queue.Len()))
			return nil
		}),
	)
	if err != nil {
		s.deps.Logger.Warn("Failed to register queue depth gauge", "error", err)
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus renders the current world state.
func (s *Service) GetStatus() Status {
	st := Status{
		Frame:         render.Build(s.deps.World.Snapshot(), s.deps.World.PlayerPosition(), s.deps.Palette),
		UptimeSeconds: time.Since(s.started).Seconds(),
	}
	if s.deps.Queue != nil {
		st.QueueDepth = s.deps.Queue.Len()
	}
	return st
}

// WriteStatus encodes the current status to w.
func (s *Service) WriteStatus(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.GetStatus()); err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	return nil
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}

	statusFile, err := os.Create(s.deps.StatusFile)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to create status file: %w", err)
	}

	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()
		defer statusFile.Close()

		logger := s.deps.Logger
		logger.Debug("Starting status monitor", "file", s.deps.StatusFile, "interval", s.deps.Interval)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			s.refresh(statusFile)
			select {
			case <-stop:
				s.refresh(statusFile)
				return
			case <-ticker.C:
			}
		}
	}()

	return nil
}

// refresh rewrites the file in place.
func (s *Service) refresh(f *os.File) {
	if err := f.Truncate(0); err != nil {
		s.deps.Logger.Error("Error truncating status file", "error", err)
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		s.deps.Logger.Error("Error rewinding status file", "error", err)
		return
	}
	if err := s.WriteStatus(f); err != nil {
		s.deps.Logger.Error("Error writing status file", "error", err)
	}
}

// Stop stops the status monitor and waits for the final write.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	done := s.done
	s.isRunning = false
	s.mu.Unlock()
	<-done
}
