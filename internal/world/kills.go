package world

import "github.com/yertz/yapr/pkg/core"

// RecordKill counts a kill made by the local player. Killing oneself is
// never counted. flush is set when the session total reaches a milestone
// (the first kill and every fifth after it).
func (m *Model) RecordKill(victim string, isPlayer bool) (c core.Counters, flush bool) {
	if m.IsSelf(victim) {
		return m.Counters(), false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if isPlayer {
		m.counters.PlayerKills++
		m.counters.SessionPlayerKills++
		m.playersKilled[victim] = struct{}{}
	} else {
		m.counters.NPCKills++
		m.counters.SessionNPCKills++
	}
	m.counters.TotalKills = m.counters.PlayerKills + m.counters.NPCKills
	m.counters.SessionKills = m.counters.SessionPlayerKills + m.counters.SessionNPCKills

	s := m.counters.SessionKills
	return m.counters, s == 1 || s%5 == 0
}

// Counters returns the kill counters.
func (m *Model) Counters() core.Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters
}
