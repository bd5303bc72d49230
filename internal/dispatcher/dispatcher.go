// Package dispatcher routes classified log events to handlers by kind.
// Handlers run synchronously on the caller's goroutine unless registered
// with Buffered, in which case a dedicated goroutine drains a queue.
package dispatcher

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrUnknownKind = errors.New("unknown event kind")
	ErrQueueFull   = errors.New("queue full")
	ErrClosed      = errors.New("dispatcher closed")
)

// Queued is the result of a successful buffered dispatch.
const Queued = "queued"

// Event is one classified log line routed to the handler for its kind.
// Payload holds the typed match; Raw and Short are the source line and its
// HH:MM:SS timestamp.
type Event struct {
	Kind      string
	Payload   any
	Raw       string
	Short     string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	bufferSize int
	blocking   bool
	logged     bool
}

// Buffered makes the handler async with a queue of the given size.
func Buffered(size int) Option {
	return func(c *config) {
		c.bufferSize = size
	}
}

// Blocking makes a buffered handler block when the queue is full instead of dropping.
func Blocking() Option {
	return func(c *config) {
		c.blocking = true
	}
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

type instruments struct {
	queueSize metric.Int64ObservableGauge
	processed metric.Int64Counter
	dropped   metric.Int64Counter
	duration  metric.Float64Histogram
}

// Dispatcher routes events to registered handlers by kind.
type Dispatcher struct {
	logger  Logger
	metrics instruments

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	buffers  map[string]chan Event
	closed   bool
	workers  sync.WaitGroup
}

// New creates a new Dispatcher with the given logger. Metrics go to the
// global OTel meter provider, which is a no-op unless one is installed.
func New(logger Logger) (*Dispatcher, error) {
	return newWithMeter(logger, meter())
}

func newWithMeter(logger Logger, m metric.Meter) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		buffers:  make(map[string]chan Event),
		logger:   logger,
	}
	if err := d.initMetrics(m); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dispatcher) initMetrics(m metric.Meter) error {
	var err error

	d.metrics.queueSize, err = m.Int64ObservableGauge(
		"yapr.dispatcher.queue.size",
		metric.WithDescription("Events waiting in a buffered handler queue"),
	)
	if err != nil {
		return errors.Wrap(err, "creating queue size gauge")
	}
	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			d.mu.RLock()
			defer d.mu.RUnlock()
			for kind, buf := range d.buffers {
				o.ObserveInt64(d.metrics.queueSize, int64(len(buf)),
					metric.WithAttributes(attribute.String("kind", kind)))
			}
			return nil
		},
		d.metrics.queueSize,
	)
	if err != nil {
		return errors.Wrap(err, "registering queue callback")
	}

	d.metrics.processed, err = m.Int64Counter(
		"yapr.dispatcher.events.processed",
		metric.WithDescription("Events handled, by kind"),
	)
	if err != nil {
		return errors.Wrap(err, "creating processed counter")
	}

	d.metrics.dropped, err = m.Int64Counter(
		"yapr.dispatcher.events.dropped",
		metric.WithDescription("Events dropped because a buffered queue was full"),
	)
	if err != nil {
		return errors.Wrap(err, "creating dropped counter")
	}

	d.metrics.duration, err = m.Float64Histogram(
		"yapr.dispatcher.handler.duration",
		metric.WithDescription("Time spent in a handler"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return errors.Wrap(err, "creating duration histogram")
	}
	return nil
}

// Register adds a handler for the given kind with optional configuration.
// Registering a kind again replaces its handler.
func (d *Dispatcher) Register(kind string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := d.measured(kind, h)
	if cfg.bufferSize > 0 {
		handler = d.withBuffer(kind, cfg.bufferSize, cfg.blocking, handler)
	}
	if cfg.logged {
		handler = d.withLogging(kind, handler)
	}

	d.mu.Lock()
	d.handlers[kind] = handler
	d.mu.Unlock()
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	d.mu.RLock()
	h, ok := d.handlers[e.Kind]
	closed := d.closed
	d.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%s", e.Kind)
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the kind.
func (d *Dispatcher) HasHandler(kind string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[kind]
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (d *Dispatcher) Kinds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	kinds := make([]string, 0, len(d.handlers))
	for k := range d.handlers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Close stops accepting events and waits until every buffered queue has
// been drained. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, buf := range d.buffers {
		close(buf)
	}
	d.mu.Unlock()
	d.workers.Wait()
}

func (d *Dispatcher) measured(kind string, h HandlerFunc) HandlerFunc {
	kindAttr := metric.WithAttributes(attribute.String("kind", kind))
	return func(e Event) (any, error) {
		start := time.Now()
		result, err := h(e)
		d.metrics.duration.Record(context.Background(), time.Since(start).Seconds(), kindAttr)
		d.metrics.processed.Add(context.Background(), 1, kindAttr)
		return result, err
	}
}

func (d *Dispatcher) withBuffer(kind string, size int, blocking bool, h HandlerFunc) HandlerFunc {
	buffer := make(chan Event, size)

	d.mu.Lock()
	d.buffers[kind] = buffer
	d.mu.Unlock()

	d.workers.Add(1)
	go func() {
		defer d.workers.Done()
		for e := range buffer {
			if _, err := h(e); err != nil {
				d.logger.Error("buffered handler failed", "kind", kind, "error", err)
			}
		}
	}()

	dropped := metric.WithAttributes(attribute.String("kind", kind))

	// The read lock is held across the send so Close cannot close the
	// channel underneath it.
	return func(e Event) (any, error) {
		d.mu.RLock()
		defer d.mu.RUnlock()
		if d.closed {
			return nil, ErrClosed
		}
		if blocking {
			buffer <- e
			return Queued, nil
		}
		select {
		case buffer <- e:
			return Queued, nil
		default:
			d.metrics.dropped.Add(context.Background(), 1, dropped)
			return nil, errors.Wrapf(ErrQueueFull, "%s", kind)
		}
	}
}

func (d *Dispatcher) withLogging(kind string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling event", "kind", kind, "ts", e.Short)

		result, err := h(e)

		if err != nil {
			d.logger.Error("event failed", "kind", kind, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "kind", kind, "duration", time.Since(start))
		}
		return result, err
	}
}
