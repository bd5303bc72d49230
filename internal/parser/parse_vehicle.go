package parser

import (
	"strconv"
	"strings"

	"github.com/yertz/yapr/pkg/core"
)

func matchVehicleSetup(l Line) (Event, bool) {
	m := setupEnvelopeRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return VehicleSetup{Name: strings.TrimSpace(m[1]), ID: strings.TrimSpace(m[2])}, true
}

func matchFuelController(l Line) (Event, bool) {
	if !fuelLambdaRe.MatchString(l.Raw) {
		return nil, false
	}
	return FuelControllerCreated{}, true
}

func matchFuelConfirm(l Line) (Event, bool) {
	if !fuelConfirmRe.MatchString(l.Raw) {
		return nil, false
	}
	return FuelControllerConfirmed{}, true
}

func matchVehicleDestruction(l Line) (Event, bool) {
	m := vehicleDestructRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	pos, ok := parsePosition(m[4], m[5], m[6])
	if !ok {
		return nil, false
	}
	from, errFrom := strconv.Atoi(m[8])
	to, errTo := strconv.Atoi(m[9])
	if errFrom != nil || errTo != nil {
		return nil, false
	}
	return VehicleDestruction{
		Name:       m[1],
		ID:         m[2],
		Zone:       m[3],
		Position:   pos,
		Driver:     m[7],
		From:       core.DestructionState(from),
		To:         core.DestructionState(to),
		Attacker:   m[10],
		DamageType: m[11],
	}, true
}

// matchVehicleControl covers both the control request and the grant; the
// request wins when a line somehow carries both.
func matchVehicleControl(l Line) (Event, bool) {
	if m := vehicleControlRe.FindStringSubmatch(l.Raw); m != nil {
		return VehicleControl{ClientID: m[1], Name: m[2], ID: m[3]}, true
	}
	if m := vehicleGrantedRe.FindStringSubmatch(l.Raw); m != nil {
		return VehicleControl{ClientID: m[1], Name: m[2], ID: m[3], Granted: true}, true
	}
	return nil, false
}
