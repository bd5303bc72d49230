package world

import (
	"github.com/yertz/yapr/internal/util"
	"github.com/yertz/yapr/pkg/core"
)

// Candidate ping keys.
const (
	AnonymousVehicleKey = "Vehicle?"
	vehicleKeyPrefix    = "Vehicle: "
)

// VehicleKey returns the ping key for a vehicle name.
func VehicleKey(name string) string {
	return vehicleKeyPrefix + util.ShortName(name)
}

// CandidateKey returns the ping key a candidate's pings are filed under.
func CandidateKey(p core.PendingVehicle) string {
	if p.Name == "" {
		return AnonymousVehicleKey
	}
	return VehicleKey(p.Name)
}

// VehicleUpdate is one observed destroy level change.
type VehicleUpdate struct {
	ID       string
	Name     string
	Zone     string
	Driver   string
	Attacker string
	Position core.Position3D
	From     core.DestructionState
	To       core.DestructionState
}

// ApplyVehicleTransition records a destroy level change for the vehicle.
// The state only moves forward; repeated transitions still extend the history.
func (m *Model) ApplyVehicleTransition(u VehicleUpdate) core.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	m.recordZoneLocked(u.Zone, "vehicle")

	v, ok := m.vehicles[u.ID]
	if !ok {
		v = &core.Vehicle{ID: u.ID, State: u.From}
		m.vehicles[u.ID] = v
	}
	if u.To > v.State {
		v.State = u.To
	}
	v.Name = u.Name
	v.Position = u.Position
	v.Zone = u.Zone
	v.Driver = u.Driver
	v.LastUpdate = now
	v.History = append(v.History, core.VehicleTransition{
		From:     u.From,
		To:       u.To,
		Attacker: u.Attacker,
		TS:       now,
	})
	return copyVehicle(v)
}

// Vehicle returns a copy of the tracked vehicle with id.
func (m *Model) Vehicle(id string) (core.Vehicle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return core.Vehicle{}, false
	}
	return copyVehicle(v), true
}

// SetVehicleSetup remembers a naming event for the next candidate.
func (m *Model) SetVehicleSetup(name, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setup = &vehicleSetup{name: name, id: id, ts: m.clock.Now()}
}

// DetectVehicleCandidate starts a new vehicle candidate and pings it. The
// candidate takes the name of a naming event seen within the naming window.
func (m *Model) DetectVehicleCandidate() (core.PendingVehicle, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	p := core.PendingVehicle{TS: now}
	if m.setup != nil && now.Sub(m.setup.ts) <= VehicleNamingWindow {
		p.Name = m.setup.name
		p.ID = m.setup.id
	}
	m.setup = nil
	m.pending = &p

	key := CandidateKey(p)
	ping := core.Ping{
		TS:            now,
		Zone:          m.currentStation,
		Action:        "DETECTED",
		Tag:           core.TagVehiclePotential,
		Overlay:       true,
		OverlayAnchor: core.AnchorBottomLeft,
	}
	if p.Name != "" {
		ping.VehicleName = p.Name
	}
	m.addPingLocked(key, ping)
	return p, key
}

// ConfirmVehicleCandidate confirms the in-flight candidate and retags its
// pings. It reports false when there is no candidate or it is already
// confirmed.
func (m *Model) ConfirmVehicleCandidate() (core.PendingVehicle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil || m.pending.Confirmed {
		return core.PendingVehicle{}, false
	}
	m.pending.Confirmed = true
	m.retagLocked(CandidateKey(*m.pending), core.TagVehiclePotential, core.TagVehicleConfirmed, "CONFIRMED")
	return *m.pending, true
}

// PendingVehicle returns the in-flight candidate, if any.
func (m *Model) PendingVehicle() (core.PendingVehicle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return core.PendingVehicle{}, false
	}
	return *m.pending, true
}

// SetCurrentVehicle records the vehicle the local player controls and
// reports whether it changed.
func (m *Model) SetCurrentVehicle(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentVehicle == name {
		return false
	}
	m.currentVehicle = name
	return true
}

// CurrentVehicle returns the local player's vehicle, empty when on foot.
func (m *Model) CurrentVehicle() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentVehicle
}

func copyVehicle(v *core.Vehicle) core.Vehicle {
	out := *v
	out.History = append([]core.VehicleTransition(nil), v.History...)
	return out
}
