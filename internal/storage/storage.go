// Package storage persists the session summary: lifetime kill counters and
// the name sets that grow across sessions.
package storage

import "github.com/yertz/yapr/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the persisted summary. A backend with nothing stored yet
	// returns a zeroed summary and no error.
	Load() (*core.Export, error)

	// Save merges e into the persisted summary. Name sets are merged by
	// union with what is already stored; scalars are overwritten.
	Save(e *core.Export) error
}

// HistoryRecorder is an optional interface for storage backends that keep
// an append-only history of kills and vehicle destructions.
type HistoryRecorder interface {
	RecordKill(k *core.KillRecord) error
	RecordVehicle(v *core.Vehicle) error
}

// Located is an optional interface for storage backends that write to a
// single file, used in export notices.
type Located interface {
	Target() string
}

// Target describes where b writes.
func Target(b Backend) string {
	if l, ok := b.(Located); ok {
		return l.Target()
	}
	return "storage"
}
