package world

import (
	"sort"
	"time"

	"github.com/yertz/yapr/pkg/core"
)

// DefaultPingLifetime applies to tags without their own entry.
const DefaultPingLifetime = 45 * time.Second

var pingLifetimes = map[core.Tag]time.Duration{
	core.TagExit:             30 * time.Second,
	core.TagDungeon:          120 * time.Second,
	core.TagNPCKill:          45 * time.Second,
	core.TagPlayerKill:       45 * time.Second,
	core.TagVehicle:          60 * time.Second,
	core.TagVehiclePotential: 30 * time.Second,
	core.TagVehicleConfirmed: 30 * time.Second,
}

// PingLifetime returns how long a ping with tag stays on the radar.
func PingLifetime(tag core.Tag) time.Duration {
	if d, ok := pingLifetimes[tag]; ok {
		return d
	}
	return DefaultPingLifetime
}

// AddPing appends p under key and refreshes the marker entity for key.
// A zero timestamp is replaced by the current time.
func (m *Model) AddPing(key string, p core.Ping) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addPingLocked(key, p)
}

func (m *Model) addPingLocked(key string, p core.Ping) {
	if p.TS.IsZero() {
		p.TS = m.clock.Now()
	}
	list := append(m.pings[key], p)
	sort.SliceStable(list, func(i, j int) bool { return list[i].TS.Before(list[j].TS) })
	if limit := m.pingCap(key); len(list) > limit {
		list = list[len(list)-limit:]
	}
	m.pings[key] = list

	pos := p.Position
	m.entities[key] = &core.Entity{
		Key:           key,
		Kind:          core.EntityKind(p.Tag),
		Position:      &pos,
		LastSeen:      p.TS,
		Zone:          p.Zone,
		Action:        p.Action,
		Overlay:       p.Overlay,
		OverlayAnchor: p.OverlayAnchor,
	}
}

func (m *Model) pingCap(key string) int {
	if m.hubKey(key) {
		return MaxPingsPerHub
	}
	return MaxPingsPerKey
}

// RetagPings moves every ping under key tagged from over to tag to, with the
// given action. It returns the number of pings changed.
func (m *Model) RetagPings(key string, from, to core.Tag, action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.retagLocked(key, from, to, action)
}

func (m *Model) retagLocked(key string, from, to core.Tag, action string) int {
	n := 0
	for i := range m.pings[key] {
		p := &m.pings[key][i]
		if p.Tag != from {
			continue
		}
		p.Tag = to
		p.Action = action
		n++
	}
	if e, ok := m.entities[key]; ok && n > 0 {
		e.Kind = core.EntityKind(to)
		e.Action = action
	}
	return n
}

// Pings returns a copy of the pings under key, oldest first.
func (m *Model) Pings(key string) []core.Ping {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Ping, len(m.pings[key]))
	copy(out, m.pings[key])
	return out
}
