package world

import (
	"fmt"

	"github.com/yertz/yapr/pkg/core"
)

// ArmSessionSwap notes a client spawn, the first half of a server swap.
func (m *Model) ArmSessionSwap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	m.swapArmedAt = &now
}

// SessionSwapArmed reports whether a spawn is waiting for its frontend close.
func (m *Model) SessionSwapArmed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swapArmedAt != nil
}

// CompleteSessionSwap clears the transient world state if a spawn was seen
// within the swap window. Identity, kill counters and the export sets survive.
// It reports whether a reset happened.
func (m *Model) CompleteSessionSwap(loadSeconds string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.swapArmedAt == nil || m.clock.Now().Sub(*m.swapArmedAt) >= SessionSwapWindow {
		return false
	}
	m.swapArmedAt = nil

	m.entities = make(map[string]*core.Entity)
	m.pings = make(map[string][]core.Ping)
	m.vehicles = make(map[string]*core.Vehicle)
	m.pending = nil
	m.setup = nil
	m.currentVehicle = ""
	m.lastSeenPlayer = nil
	m.spawnResets.Reset()
	m.zoneMentions.Clear()
	m.events.Clear()

	m.addEventLocked(core.EventInfo, fmt.Sprintf("[SERVER SWAP] Detected server change (loaded in %ss), radar data cleared", loadSeconds))
	m.logger.Info("Session swap detected", "loadSeconds", loadSeconds)
	return true
}
