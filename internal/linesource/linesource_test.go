package linesource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yertz/yapr/internal/queue"
)

func writeLog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Game.log")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func appendLog(t *testing.T, path, body string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(body)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func drainQueue(q *queue.Queue[string]) []string {
	return q.Take(0)
}

func TestCheckLog(t *testing.T) {
	path := writeLog(t, "")
	assert.NoError(t, CheckLog(path))

	err := CheckLog(filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLogMissing))
	assert.True(t, IsFatal(err))
	assert.Contains(t, errors.FlattenHints(err), "--game-log")

	err = CheckLog(t.TempDir())
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.False(t, errors.Is(err, ErrLogMissing))
}

func TestTailer_SkipsHistoryAndJoinsPartialLines(t *testing.T) {
	path := writeLog(t, "old line 1\nold line 2\n")
	q := queue.New[string]()
	tailer := NewTailer(path, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- tailer.Run(ctx, q) }()

	// Give the tailer time to seek to the end.
	time.Sleep(50 * time.Millisecond)

	appendLog(t, path, "first\r\nsec")
	assert.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	appendLog(t, path, "ond\nthird\n")

	var got []string
	assert.Eventually(t, func() bool {
		got = append(got, drainQueue(q)...)
		return len(got) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"first", "second", "third"}, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("tailer did not stop")
	}
}

func TestTailer_RestartsAfterTruncation(t *testing.T) {
	path := writeLog(t, strings.Repeat("history line\n", 20))
	q := queue.New[string]()
	tailer := NewTailer(path, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = tailer.Run(ctx, q) }()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("fresh start\n"), 0644))

	assert.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"fresh start"}, drainQueue(q))
}

func TestTailer_MissingFilePushesSentinel(t *testing.T) {
	q := queue.New[string]()
	tailer := NewTailer(filepath.Join(t.TempDir(), "missing.log"), 0, nil)

	err := tailer.Run(context.Background(), q)
	require.Error(t, err)
	assert.True(t, IsFatal(err))

	lines := drainQueue(q)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], SentinelPrefix+"Tail thread stopped: "))
}

func TestScan(t *testing.T) {
	path := writeLog(t, "a\r\nb\n\xffc\nd")

	var got []string
	err := Scan(context.Background(), path, func(line string) bool {
		got = append(got, line)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestScan_StopsEarly(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	var got []string
	require.NoError(t, Scan(context.Background(), path, func(line string) bool {
		got = append(got, line)
		return line != "b"
	}))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestScan_MissingFile(t *testing.T) {
	err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), func(string) bool { return true })
	assert.Error(t, err)
}
