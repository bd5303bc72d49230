package linesource

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/yertz/yapr/internal/queue"
)

// DefaultPollInterval is how often the tail checks for new data when no
// change notification arrives.
const DefaultPollInterval = 120 * time.Millisecond

// Tailer follows the game log from its current end, pushing complete lines
// onto a queue. A line without its newline is held until the rest arrives.
type Tailer struct {
	path   string
	poll   time.Duration
	logger *slog.Logger

	file    *os.File
	reader  *bufio.Reader
	offset  int64
	partial string
}

// NewTailer creates a tailer for path. A zero poll uses DefaultPollInterval.
func NewTailer(path string, poll time.Duration, logger *slog.Logger) *Tailer {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tailer{path: path, poll: poll, logger: logger}
}

// Run tails the log until ctx is done. On a read failure it pushes a
// sentinel line and returns an error marked ErrFatal.
func (t *Tailer) Run(ctx context.Context, q *queue.Queue[string]) error {
	if err := t.open(); err != nil {
		return t.stop(q, err)
	}
	defer t.file.Close()

	// Change notifications only shorten the wait; the poll still runs.
	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.logger.Warn("File watcher unavailable, polling only", "error", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(t.path)); err != nil {
			t.logger.Warn("Failed to watch log directory, polling only", "error", err)
		} else {
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}

	ticker := time.NewTicker(t.poll)
	defer ticker.Stop()

	t.logger.Info("Tailing game log", "path", t.path, "offset", t.offset)
	for {
		if err := t.drain(q); err != nil {
			return t.stop(q, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != filepath.Clean(t.path) {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				t.logger.Warn("Game log moved or removed, waiting for it to return", "op", ev.Op.String())
			}
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			t.logger.Warn("File watcher error", "error", err)
		}
	}
}

func (t *Tailer) open() error {
	f, err := os.Open(t.path)
	if err != nil {
		return errors.Wrap(err, "failed to open game log")
	}
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return errors.Wrap(err, "failed to seek game log")
	}
	t.file = f
	t.reader = bufio.NewReaderSize(f, 64*1024)
	t.offset = end
	return nil
}

// drain pushes every complete line written since the last call. A file
// that shrank was restarted by the game and is read from the top.
func (t *Tailer) drain(q *queue.Queue[string]) error {
	info, err := t.file.Stat()
	if err != nil {
		return errors.Wrap(err, "failed to stat game log")
	}
	if info.Size() < t.offset {
		t.logger.Info("Game log truncated, reading from the start", "size", info.Size(), "offset", t.offset)
		if _, err := t.file.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "failed to rewind game log")
		}
		t.reader.Reset(t.file)
		t.offset = 0
		t.partial = ""
	}

	var lines []string
	for {
		chunk, err := t.reader.ReadString('\n')
		t.offset += int64(len(chunk))
		if err == io.EOF {
			t.partial += chunk
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to read game log")
		}
		lines = append(lines, cleanLine(t.partial+chunk))
		t.partial = ""
	}
	if len(lines) > 0 {
		q.Push(lines...)
	}
	return nil
}

func (t *Tailer) stop(q *queue.Queue[string], err error) error {
	t.logger.Error("Tail stopped", "path", t.path, "error", err)
	q.Push(sentinel(err))
	return errors.Mark(err, ErrFatal)
}
