package world

import (
	"fmt"

	"github.com/yertz/yapr/pkg/core"
)

// Source says which path produced an identity detection.
type Source int

const (
	// SourceLive is the tailing consumer.
	SourceLive Source = iota
	// SourceHistory is the one-shot scan of the existing log.
	SourceHistory
)

func (s Source) String() string {
	if s == SourceHistory {
		return "history"
	}
	return "live"
}

type identityField int

const (
	fieldName identityField = iota
	fieldID
	fieldVersion
)

// Identity returns the local player's identity.
func (m *Model) Identity() core.Identity {
	m.idMu.RLock()
	defer m.idMu.RUnlock()
	return m.identity
}

// IsSelf reports whether name is the local player.
func (m *Model) IsSelf(name string) bool {
	return m.Identity().IsSelf(name)
}

// ResolveIdentity merges a detected identity into the current one.
//
// A field is replaced when the candidate value is known and differs from the
// current value. The player ID is only taken while still empty. A history
// detection never replaces a field the live path already resolved, since the
// live line is always the newer one.
func (m *Model) ResolveIdentity(c core.Identity, src Source) core.Identity {
	m.idMu.Lock()
	var notices []string
	if m.resolveLocked(&m.identity.PlayerName, c.PlayerName, fieldName, src) {
		notices = append(notices, "Player detected: "+c.PlayerName)
	}
	if m.identity.PlayerID == "" && m.resolveLocked(&m.identity.PlayerID, c.PlayerID, fieldID, src) {
		notices = append(notices, "Player ID detected: "+c.PlayerID)
	}
	if m.resolveLocked(&m.identity.GameVersion, c.GameVersion, fieldVersion, src) {
		notices = append(notices, "Game version detected: "+c.GameVersion)
	}
	id := m.identity
	m.idMu.Unlock()

	for _, n := range notices {
		m.AddEvent(core.EventYou, fmt.Sprintf("[SYSTEM] %s", n))
		m.logger.Info("Identity resolved", "detail", n, "source", src.String())
	}
	return id
}

func (m *Model) resolveLocked(cur *string, candidate string, f identityField, src Source) bool {
	if candidate == "" || candidate == core.Unknown || candidate == *cur {
		return false
	}
	if src == SourceHistory && m.liveSet[f] {
		return false
	}
	*cur = candidate
	if src == SourceLive {
		m.liveSet[f] = true
	}
	return true
}
