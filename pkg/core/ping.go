// pkg/core/ping.go
package core

import "time"

// Tag classifies a ping and selects its lifetime and colour.
type Tag string

const (
	TagTransit          Tag = "transit"
	TagExit             Tag = "exit"
	TagDungeon          Tag = "dungeon"
	TagNPCKill          Tag = "npc_kill"
	TagPlayerKill       Tag = "player_kill"
	TagVehicle          Tag = "vehicle"
	TagVehiclePotential Tag = "vehicle_potential"
	TagVehicleConfirmed Tag = "vehicle_confirmed"
)

// Anchor is the screen corner an overlay ping is pinned to.
type Anchor string

const (
	AnchorNone        Anchor = ""
	AnchorTopRight    Anchor = "top_right"
	AnchorBottomRight Anchor = "bottom_right"
	AnchorBottomLeft  Anchor = "bottom_left"
)

// Ping is a short-lived tagged notification bound to a friendly key.
type Ping struct {
	TS            time.Time
	Position      Position3D
	Zone          string
	Action        string
	Tag           Tag
	PlayerName    string
	VictimName    string
	VehicleName   string
	Attacker      string
	Overlay       bool
	OverlayAnchor Anchor
	Fresh         bool
}
