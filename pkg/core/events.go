// pkg/core/events.go
package core

import (
	"sort"
	"time"
)

// EventKind groups event log entries for display.
type EventKind string

const (
	EventInfo       EventKind = "info"
	EventYou        EventKind = "you"
	EventPlayer     EventKind = "player"
	EventDeath      EventKind = "death"
	EventTransit    EventKind = "transit"
	EventDungeon    EventKind = "dungeon"
	EventNPCKill    EventKind = "npc_kill"
	EventPlayerKill EventKind = "player_kill"
	EventVehicle    EventKind = "vehicle"
	EventError      EventKind = "error"
)

// Event is one human-readable entry in the rolling event log.
type Event struct {
	Time    time.Time `json:"time"`
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
}

// Counters are the kill tallies. Lifetime counters persist across runs,
// session counters start at zero on every load.
type Counters struct {
	PlayerKills        int `json:"playerKills"`
	NPCKills           int `json:"npcKills"`
	TotalKills         int `json:"totalKills"`
	SessionPlayerKills int `json:"sessionPlayerKills"`
	SessionNPCKills    int `json:"sessionNpcKills"`
	SessionKills       int `json:"sessionKills"`
}

// Export is the persisted summary. Set fields are merged by union on save.
type Export struct {
	LastUpdated    time.Time
	PlayerName     string
	GameVersion    string
	TotalKills     int
	NPCKills       int
	PlayerKills    int
	UniqueTransits []string
	UniquePlayers  []string
	PlayersKilled  []string
	DetectedZones  []string
}

// KillRecord is one attributed kill, kept for history backends.
type KillRecord struct {
	Time     time.Time
	Victim   string
	IsPlayer bool
	Zone     string
	Weapon   string
	Damage   string
	Position Position3D
}

// EmptyExport returns a zeroed summary with unresolved identity fields.
func EmptyExport() Export {
	return Export{
		PlayerName:     Unknown,
		GameVersion:    Unknown,
		UniqueTransits: []string{},
		UniquePlayers:  []string{},
		PlayersKilled:  []string{},
		DetectedZones:  []string{},
	}
}

// MergeExports combines a stored summary with the current one. Scalars come
// from current, name sets are the sorted union of both. stored may be nil.
func MergeExports(stored *Export, current Export) Export {
	if stored == nil {
		stored = &Export{}
	}
	out := current
	out.UniqueTransits = union(stored.UniqueTransits, current.UniqueTransits)
	out.UniquePlayers = union(stored.UniquePlayers, current.UniquePlayers)
	out.PlayersKilled = union(stored.PlayersKilled, current.PlayersKilled)
	out.DetectedZones = union(stored.DetectedZones, current.DetectedZones)
	return out
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, set := range [][]string{a, b} {
		for _, s := range set {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
