package world

import (
	"sort"
	"time"
)

// Evict ages out pings, then entities, vehicles and cooldowns.
//
// Pings older than their tag's lifetime are dropped and each key keeps only
// its newest pings up to the key's cap. Only the newest ping of a key can be
// fresh. An entity outlives EntityTimeout only while its key still has pings.
func (m *Model) Evict(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, list := range m.pings {
		kept := list[:0]
		for _, p := range list {
			if now.Sub(p.TS) <= PingLifetime(p.Tag) {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(m.pings, key)
			continue
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].TS.Before(kept[j].TS) })
		if limit := m.pingCap(key); len(kept) > limit {
			kept = kept[len(kept)-limit:]
		}
		for i := range kept {
			kept[i].Fresh = false
		}
		newest := &kept[len(kept)-1]
		newest.Fresh = now.Sub(newest.TS) <= FlashWindow
		m.pings[key] = kept
	}

	for key, e := range m.entities {
		if now.Sub(e.LastSeen) <= EntityTimeout {
			continue
		}
		if _, active := m.pings[key]; active {
			continue
		}
		delete(m.entities, key)
	}

	for id, v := range m.vehicles {
		if now.Sub(v.LastUpdate) > VehicleTimeout {
			delete(m.vehicles, id)
		}
	}

	m.spawnResets.Evict(now)

	if m.swapArmedAt != nil && now.Sub(*m.swapArmedAt) >= SessionSwapWindow {
		m.swapArmedAt = nil
	}
}
