// pkg/core/vehicle.go
package core

import "time"

// DestructionState is the destroy level reported for a vehicle.
type DestructionState int

const (
	Alive    DestructionState = 0
	Softed   DestructionState = 1
	FullDead DestructionState = 2
)

// String returns the game's name for the destroy level.
func (s DestructionState) String() string {
	switch s {
	case Alive:
		return "Alive"
	case Softed:
		return "Softed"
	case FullDead:
		return "FullDead"
	default:
		return "Unknown"
	}
}

// VehicleTransition is one observed destroy level change.
type VehicleTransition struct {
	From     DestructionState `json:"from"`
	To       DestructionState `json:"to"`
	Attacker string           `json:"attacker"`
	TS       time.Time        `json:"ts"`
}

// Vehicle is a tracked destructible vehicle keyed by its instance ID.
type Vehicle struct {
	ID         string
	Name       string
	State      DestructionState
	Position   Position3D
	Zone       string
	Driver     string
	LastUpdate time.Time
	History    []VehicleTransition
}

// PendingVehicle is the single in-flight vehicle candidate.
// Name and ID are set only when a naming event preceded detection.
type PendingVehicle struct {
	TS        time.Time
	Confirmed bool
	Name      string
	ID        string
}
