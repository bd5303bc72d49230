package world

import (
	"fmt"
	"sort"
	"time"

	"github.com/yertz/yapr/pkg/core"
)

// Snapshot is a point-in-time copy of the world for renderers.
type Snapshot struct {
	Taken          time.Time
	Identity       core.Identity
	Counters       core.Counters
	Station        string
	CurrentVehicle string
	// Pending is the in-flight vehicle candidate, nil when there is none.
	Pending  *core.PendingVehicle
	Entities []core.Entity
	Pings    map[string][]core.Ping
	Vehicles []core.Vehicle
	// ZoneMentions and Events are newest first.
	ZoneMentions []ZoneMention
	Events       []core.Event
}

// Snapshot copies the current state. Entities are sorted by key and
// vehicles by ID.
func (m *Model) Snapshot() Snapshot {
	id := m.Identity()

	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Taken:          m.clock.Now(),
		Identity:       id,
		Counters:       m.counters,
		Station:        m.currentStation,
		CurrentVehicle: m.currentVehicle,
		Entities:       make([]core.Entity, 0, len(m.entities)),
		Pings:          make(map[string][]core.Ping, len(m.pings)),
		Vehicles:       make([]core.Vehicle, 0, len(m.vehicles)),
		ZoneMentions:   m.zoneMentions.Items(),
		Events:         m.events.Items(),
	}
	if m.pending != nil {
		p := *m.pending
		s.Pending = &p
	}
	for _, e := range m.entities {
		s.Entities = append(s.Entities, copyEntity(e))
	}
	sort.Slice(s.Entities, func(i, j int) bool { return s.Entities[i].Key < s.Entities[j].Key })
	for key, list := range m.pings {
		s.Pings[key] = append([]core.Ping(nil), list...)
	}
	for _, v := range m.vehicles {
		s.Vehicles = append(s.Vehicles, copyVehicle(v))
	}
	sort.Slice(s.Vehicles, func(i, j int) bool { return s.Vehicles[i].ID < s.Vehicles[j].ID })
	return s
}

// Export builds the persisted summary from the in-memory state.
func (m *Model) Export() core.Export {
	id := m.Identity()

	m.mu.Lock()
	defer m.mu.Unlock()

	return core.Export{
		LastUpdated:    m.clock.Now().UTC(),
		PlayerName:     id.PlayerName,
		GameVersion:    id.GameVersion,
		TotalKills:     m.counters.TotalKills,
		NPCKills:       m.counters.NPCKills,
		PlayerKills:    m.counters.PlayerKills,
		UniqueTransits: sortedKeys(m.transitLocations),
		UniquePlayers:  sortedKeys(m.playerNames),
		PlayersKilled:  sortedKeys(m.playersKilled),
		DetectedZones:  sortedKeys(m.detectedZones),
	}
}

// LoadCounters restores lifetime counters from a persisted summary. Session
// counters start again from zero.
func (m *Model) LoadCounters(e core.Export) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters = core.Counters{
		PlayerKills: e.PlayerKills,
		NPCKills:    e.NPCKills,
		TotalKills:  e.PlayerKills + e.NPCKills,
	}
	m.addEventLocked(core.EventInfo, fmt.Sprintf("[CONFIG] Loaded %d player kills, %d NPC kills (Total: %d)",
		m.counters.PlayerKills, m.counters.NPCKills, m.counters.TotalKills))
}

// RecordExport notes the outcome of a save in the event log. Failures are
// always logged; successes at most once per ExportEventInterval.
func (m *Model) RecordExport(target string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if err != nil {
		m.addEventLocked(core.EventError, fmt.Sprintf("[EXPORT ERROR] %v", err))
		return
	}
	if m.exportEvents.AllowN(now, 1) {
		m.addEventLocked(core.EventInfo, fmt.Sprintf("[EXPORT] Data updated in %s", target))
	}
}
