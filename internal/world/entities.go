package world

import (
	"fmt"
	"strings"
	"time"

	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/pkg/core"
)

// Observation is what a line says about a player.
type Observation int

const (
	// ObserveSighting refreshes the player without changing its status.
	ObserveSighting Observation = iota
	// ObserveDeath marks the player dead.
	ObserveDeath
	// ObserveCorpse marks the player dead unless it died moments ago.
	ObserveCorpse
	// ObserveIncap marks the player incapacitated.
	ObserveIncap
	// ObserveSpawnFlow revives a dead player.
	ObserveSpawnFlow
)

// Sighting is the outcome of ObservePlayer.
type Sighting struct {
	Accepted bool
	Created  bool
	// Revived is set when a spawn flow brought a dead player back.
	Revived bool
	// StatusChanged is false when the status was already what the line said.
	StatusChanged bool
	PrevSeen      time.Time
	Entity        core.Entity
}

// ObservePlayer upserts the player entity for name. Names that fail the
// validity predicate or refer to the local player are rejected.
func (m *Model) ObservePlayer(name string, pos *core.Position3D, obs Observation) Sighting {
	name = strings.TrimSpace(name)
	if !parser.IsValidPlayerName(name) || m.IsSelf(name) {
		return Sighting{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	s := Sighting{Accepted: true}
	e, ok := m.entities[name]
	if !ok {
		e = &core.Entity{Key: name, Status: core.StatusAlive}
		m.entities[name] = e
		s.Created = true
	} else {
		s.PrevSeen = e.LastSeen
	}
	e.Kind = core.KindPlayer
	if e.Status == "" {
		e.Status = core.StatusAlive
	}
	if pos != nil {
		p := *pos
		e.Position = &p
	}

	switch obs {
	case ObserveDeath:
		s.StatusChanged = e.Status != core.StatusDead
		e.Status = core.StatusDead
		e.DeathTS = &now
	case ObserveCorpse:
		if e.Status == core.StatusDead && e.DeathTS != nil && now.Sub(*e.DeathTS) < CorpseGuardWindow {
			break
		}
		s.StatusChanged = true
		e.Status = core.StatusDead
		e.DeathTS = &now
	case ObserveIncap:
		s.StatusChanged = e.Status != core.StatusIncap
		e.Status = core.StatusIncap
	case ObserveSpawnFlow:
		if e.Status == core.StatusDead {
			e.Status = core.StatusAlive
			e.DeathTS = nil
			s.Revived = true
			s.StatusChanged = true
		}
	}

	e.LastSeen = now
	m.playerNames[name] = struct{}{}
	m.lastSeenPlayer = &sighting{name: name, ts: now}
	s.Entity = copyEntity(e)
	return s
}

// MarkSpawnReset flags name as having reset their spawn at spawnpoint.
// Repeats for the same name inside the cooldown are suppressed.
func (m *Model) MarkSpawnReset(name, playerID, spawnpoint string) bool {
	name = strings.TrimSpace(name)
	id := m.Identity()
	if (playerID != "" && playerID == id.PlayerID) || id.IsSelf(name) {
		return false
	}
	if !parser.IsValidPlayerName(name) {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if !m.spawnResets.Allow(name, now) {
		return false
	}
	e, ok := m.entities[name]
	if !ok {
		e = &core.Entity{Key: name, Kind: core.KindPlayer, Status: core.StatusAlive}
		m.entities[name] = e
	}
	e.SpawnReset = true
	e.SpawnResetTS = &now
	e.LastSeen = now
	m.playerNames[name] = struct{}{}
	m.addEventLocked(core.EventPlayer, fmt.Sprintf("[SPAWN RESET] %s reset their spawn at %s", name, spawnpoint))
	return true
}

// ObservePosition stores a bare position line under the subject named on a
// recent line: a nickname, a transit manager, or a synthetic object key.
// It returns the key used.
func (m *Model) ObservePosition(nickname, manager string, pos core.Position3D) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := nickname
	if key == "" && manager != "" {
		key = parser.NormalizeManager(manager, m.currentStation)
	}
	if key == "" {
		key = fmt.Sprintf("obj_%d", len(m.entities)+1)
	}

	kind := core.KindTransit
	e, ok := m.entities[key]
	if ok && e.Kind != "" {
		kind = e.Kind
	}
	if !ok {
		e = &core.Entity{Key: key}
		m.entities[key] = e
	}
	p := pos
	e.Kind = kind
	e.Position = &p
	e.LastSeen = m.clock.Now()
	return key
}

// Entity returns a copy of the entity stored under key.
func (m *Model) Entity(key string) (core.Entity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entities[key]
	if !ok {
		return core.Entity{}, false
	}
	return copyEntity(e), true
}

func copyEntity(e *core.Entity) core.Entity {
	out := *e
	if e.Position != nil {
		p := *e.Position
		out.Position = &p
	}
	if e.DeathTS != nil {
		t := *e.DeathTS
		out.DeathTS = &t
	}
	if e.SpawnResetTS != nil {
		t := *e.SpawnResetTS
		out.SpawnResetTS = &t
	}
	return out
}
