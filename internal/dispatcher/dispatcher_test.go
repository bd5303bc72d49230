package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+msg)
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("DEBUG", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("INFO", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("ERROR", msg) }

func (l *recordingLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func newDispatcher(t *testing.T) (*Dispatcher, *recordingLogger) {
	t.Helper()
	log := &recordingLogger{}
	d, err := New(log)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, log
}

func TestDispatch_Sync(t *testing.T) {
	d, _ := newDispatcher(t)
	d.Register("kill", func(e Event) (any, error) {
		return fmt.Sprintf("%s@%s", e.Payload, e.Short), nil
	})

	result, err := d.Dispatch(Event{Kind: "kill", Payload: "Bob_7", Short: "12:00:01"})
	require.NoError(t, err)
	assert.Equal(t, "Bob_7@12:00:01", result)
}

func TestDispatch_HandlerError(t *testing.T) {
	d, _ := newDispatcher(t)
	boom := errors.New("boom")
	d.Register("zone", func(Event) (any, error) { return nil, boom })

	_, err := d.Dispatch(Event{Kind: "zone"})
	assert.ErrorIs(t, err, boom)
}

func TestDispatch_UnknownKind(t *testing.T) {
	d, _ := newDispatcher(t)

	_, err := d.Dispatch(Event{Kind: "teleport"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Contains(t, err.Error(), "teleport")
}

func TestDispatch_Buffered(t *testing.T) {
	d, _ := newDispatcher(t)

	var handled atomic.Int32
	d.Register("history:kill", func(Event) (any, error) {
		handled.Add(1)
		return nil, nil
	}, Buffered(8))

	for range 5 {
		result, err := d.Dispatch(Event{Kind: "history:kill"})
		require.NoError(t, err)
		assert.Equal(t, Queued, result)
	}
	assert.Eventually(t, func() bool { return handled.Load() == 5 }, time.Second, 5*time.Millisecond)
}

func TestDispatch_BufferedDropsWhenFull(t *testing.T) {
	d, _ := newDispatcher(t)

	block := make(chan struct{})
	started := make(chan struct{}, 1)
	d.Register("alert", func(Event) (any, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil, nil
	}, Buffered(1))
	defer close(block)

	// first event parks the worker, second fills the queue
	_, err := d.Dispatch(Event{Kind: "alert"})
	require.NoError(t, err)
	<-started
	_, err = d.Dispatch(Event{Kind: "alert"})
	require.NoError(t, err)

	_, err = d.Dispatch(Event{Kind: "alert"})
	assert.True(t, errors.Is(err, ErrQueueFull))
}

func TestDispatch_BufferedBlocking(t *testing.T) {
	d, _ := newDispatcher(t)

	release := make(chan struct{})
	var handled atomic.Int32
	d.Register("history:vehicle", func(Event) (any, error) {
		<-release
		handled.Add(1)
		return nil, nil
	}, Buffered(1), Blocking())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 3 {
			_, err := d.Dispatch(Event{Kind: "history:vehicle"})
			assert.NoError(t, err)
		}
	}()

	select {
	case <-done:
		t.Fatal("dispatch returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	assert.Eventually(t, func() bool { return handled.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestDispatch_BufferedErrorIsLogged(t *testing.T) {
	d, log := newDispatcher(t)
	d.Register("alert", func(Event) (any, error) {
		return nil, errors.New("no speaker")
	}, Buffered(1))

	_, err := d.Dispatch(Event{Kind: "alert"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		for _, l := range log.snapshot() {
			if l == "ERROR buffered handler failed" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestDispatch_Logged(t *testing.T) {
	d, log := newDispatcher(t)
	d.Register("ok", func(Event) (any, error) { return 1, nil }, Logged())
	d.Register("bad", func(Event) (any, error) { return nil, errors.New("x") }, Logged())

	_, _ = d.Dispatch(Event{Kind: "ok"})
	_, _ = d.Dispatch(Event{Kind: "bad"})

	assert.Equal(t, []string{
		"DEBUG handling event",
		"DEBUG event complete",
		"DEBUG handling event",
		"ERROR event failed",
	}, log.snapshot())
}

func TestRegister_ReplacesHandler(t *testing.T) {
	d, _ := newDispatcher(t)
	d.Register("zone", func(Event) (any, error) { return "old", nil })
	d.Register("zone", func(Event) (any, error) { return "new", nil })

	result, err := d.Dispatch(Event{Kind: "zone"})
	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

func TestKinds(t *testing.T) {
	d, _ := newDispatcher(t)
	assert.Empty(t, d.Kinds())

	noop := func(Event) (any, error) { return nil, nil }
	d.Register("zone", noop)
	d.Register("alert", noop, Buffered(1))
	d.Register("kill", noop)

	assert.Equal(t, []string{"alert", "kill", "zone"}, d.Kinds())
	assert.True(t, d.HasHandler("kill"))
	assert.False(t, d.HasHandler("corpse"))
}

func TestClose_DrainsBufferedQueues(t *testing.T) {
	d, _ := newDispatcher(t)

	var handled atomic.Int32
	d.Register("history:kill", func(Event) (any, error) {
		time.Sleep(time.Millisecond)
		handled.Add(1)
		return nil, nil
	}, Buffered(16))

	for range 10 {
		_, err := d.Dispatch(Event{Kind: "history:kill"})
		require.NoError(t, err)
	}
	d.Close()
	assert.Equal(t, int32(10), handled.Load())

	_, err := d.Dispatch(Event{Kind: "history:kill"})
	assert.ErrorIs(t, err, ErrClosed)

	// second close is a no-op
	d.Close()
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	d, err := newWithMeter(&recordingLogger{}, mp.Meter("test"))
	require.NoError(t, err)
	t.Cleanup(d.Close)

	d.Register("kill", func(Event) (any, error) { return nil, nil })
	for range 3 {
		_, err := d.Dispatch(Event{Kind: "kill"})
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var processed int64
	var sawDuration bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "yapr.dispatcher.events.processed":
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				for _, dp := range sum.DataPoints {
					processed += dp.Value
				}
			case "yapr.dispatcher.handler.duration":
				sawDuration = true
			}
		}
	}
	assert.Equal(t, int64(3), processed)
	assert.True(t, sawDuration)
}
