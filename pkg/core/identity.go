// pkg/core/identity.go
package core

import "strings"

// Unknown is the placeholder for identity fields that have not been detected yet.
const Unknown = "Unknown"

// Identity is the local player's identity as detected from the game log.
// PlayerID is empty until detected.
type Identity struct {
	PlayerName  string
	PlayerID    string
	GameVersion string
}

// NewIdentity returns an identity with every field unresolved.
func NewIdentity() Identity {
	return Identity{PlayerName: Unknown, GameVersion: Unknown}
}

// IsSelf reports whether name refers to the local player, ignoring case and
// surrounding whitespace.
func (i Identity) IsSelf(name string) bool {
	if name == "" || i.PlayerName == "" || i.PlayerName == Unknown {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(i.PlayerName))
}

// Resolved reports whether all identity fields have been detected.
func (i Identity) Resolved() bool {
	return i.PlayerName != Unknown && i.GameVersion != Unknown && i.PlayerID != ""
}
