package parser

import (
	"strconv"
	"strings"

	"github.com/yertz/yapr/pkg/core"
)

const (
	// RecentWindowSize is how many raw lines are kept for backward lookups.
	RecentWindowSize = 400
	// AssociationLookback is how many recent lines are searched when pairing a
	// position with a preceding name.
	AssociationLookback = 12
)

// Line is a raw log line with its extracted timestamp and a view of the lines
// that preceded it. Window includes the line itself as its newest entry.
type Line struct {
	Raw       string
	Timestamp string
	Short     string
	window    *Window
}

// Window is a bounded history of recent raw lines, oldest first.
type Window struct {
	lines []string
	max   int
}

// NewWindow creates a window holding at most max lines.
func NewWindow(max int) *Window {
	return &Window{lines: make([]string, 0, max), max: max}
}

func (w *Window) push(raw string) {
	if len(w.lines) == w.max {
		copy(w.lines, w.lines[1:])
		w.lines = w.lines[:w.max-1]
	}
	w.lines = append(w.lines, raw)
}

// Len returns the number of lines held.
func (w *Window) Len() int {
	return len(w.lines)
}

// Reverse calls fn for the newest n lines, newest first, until fn returns false.
// n <= 0 means all lines.
func (w *Window) Reverse(n int, fn func(raw string) bool) {
	stop := 0
	if n > 0 && n < len(w.lines) {
		stop = len(w.lines) - n
	}
	for i := len(w.lines) - 1; i >= stop; i-- {
		if !fn(w.lines[i]) {
			return
		}
	}
}

// Normalizer extracts timestamps and maintains the recent-line window.
// It is owned by the single consumer goroutine.
type Normalizer struct {
	window *Window
	now    func() string
}

// NewNormalizer creates a normalizer. now supplies the timestamp used when a
// line carries none.
func NewNormalizer(now func() string) *Normalizer {
	return &Normalizer{window: NewWindow(RecentWindowSize), now: now}
}

// Next records raw in the window and returns it as a Line.
func (n *Normalizer) Next(raw string) Line {
	ts := ""
	if m := timestampRe.FindStringSubmatch(raw); m != nil {
		ts = m[1]
	} else if n.now != nil {
		ts = n.now()
	}
	n.window.push(raw)
	return Line{Raw: raw, Timestamp: ts, Short: shortTimestamp(ts), window: n.window}
}

// NewLine wraps raw without any history. Used by one-off scans and tests.
func NewLine(raw string) Line {
	w := NewWindow(1)
	w.push(raw)
	ts := ""
	if m := timestampRe.FindStringSubmatch(raw); m != nil {
		ts = m[1]
	}
	return Line{Raw: raw, Timestamp: ts, Short: shortTimestamp(ts), window: w}
}

// shortTimestamp reduces an ISO timestamp to HH:MM:SS.
func shortTimestamp(ts string) string {
	i := strings.IndexByte(ts, 'T')
	if i < 0 {
		return ts
	}
	rest := ts[i+1:]
	if len(rest) > 8 {
		rest = rest[:8]
	}
	return rest
}

// parsePosition converts three captured coordinate strings.
func parsePosition(x, y, z string) (core.Position3D, bool) {
	fx, errX := strconv.ParseFloat(x, 64)
	fy, errY := strconv.ParseFloat(y, 64)
	fz, errZ := strconv.ParseFloat(z, 64)
	if errX != nil || errY != nil || errZ != nil {
		return core.Position3D{}, false
	}
	return core.Position3D{X: fx, Y: fy, Z: fz}, true
}

// findPosition extracts the first "at position" triple in raw.
func findPosition(raw string) (core.Position3D, bool) {
	m := posRe.FindStringSubmatch(raw)
	if m == nil {
		return core.Position3D{}, false
	}
	return parsePosition(m[1], m[2], m[3])
}

// RecentPosition returns the newest position among the last n lines.
func (l Line) RecentPosition(n int) *core.Position3D {
	var found *core.Position3D
	l.window.Reverse(n, func(raw string) bool {
		if p, ok := findPosition(raw); ok {
			found = &p
			return false
		}
		return true
	})
	return found
}

// PositionMentioning returns the newest position on a recent line that also
// contains name.
func (l Line) PositionMentioning(name string) *core.Position3D {
	if name == "" {
		return nil
	}
	var found *core.Position3D
	l.window.Reverse(0, func(raw string) bool {
		if !strings.Contains(raw, name) {
			return true
		}
		if p, ok := findPosition(raw); ok {
			found = &p
			return false
		}
		return true
	})
	return found
}

// RecentSubject finds the nickname or transit manager named on the newest of
// the last n lines that mentions either.
func (l Line) RecentSubject(n int) (nickname, manager string) {
	l.window.Reverse(n, func(raw string) bool {
		if m := nickRe.FindStringSubmatch(raw); m != nil {
			nickname = m[1]
			return false
		}
		if m := managerTokenRe.FindStringSubmatch(raw); m != nil {
			manager = m[1]
			return false
		}
		return true
	})
	return nickname, manager
}
