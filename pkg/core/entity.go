// pkg/core/entity.go
package core

import (
	"fmt"
	"time"
)

// Position3D is a point in game space.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// String formats the position with one decimal, the way it appears in the event log.
func (p Position3D) String() string {
	return fmt.Sprintf("(%.1f,%.1f,%.1f)", p.X, p.Y, p.Z)
}

// EntityKind identifies what an entity marker represents.
// Ping-backed markers use the ping tag as their kind.
type EntityKind string

const (
	KindPlayer  EntityKind = "player"
	KindTransit EntityKind = "transit"
)

// EntityStatus is the life state of a player entity.
type EntityStatus string

const (
	StatusAlive EntityStatus = "alive"
	StatusDead  EntityStatus = "dead"
	StatusIncap EntityStatus = "incap"
)

// Entity is a tracked player or an inferred location/object marker.
// Key is the display name and is unique. Markers refreshed by a ping carry
// the ping's zone, action and overlay placement.
type Entity struct {
	Key           string
	Kind          EntityKind
	Status        EntityStatus
	Position      *Position3D
	LastSeen      time.Time
	DeathTS       *time.Time
	SpawnReset    bool
	SpawnResetTS  *time.Time
	Zone          string
	Action        string
	Overlay       bool
	OverlayAnchor Anchor
}
