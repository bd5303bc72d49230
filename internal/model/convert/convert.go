// Package convert provides functions to convert GORM models to core models
package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/yertz/yapr/internal/model"
	"github.com/yertz/yapr/pkg/core"
)

// pointToPosition3D converts a geom.Point to a core.Position3D
func pointToPosition3D(p geom.Point) core.Position3D {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Position3D{}
	}
	return core.Position3D{X: coord.XY.X, Y: coord.XY.Y, Z: coord.Z}
}

// ProfileToExport builds an export from the profile row and the name sets.
func ProfileToExport(p model.Profile, transits, players, killed, zones []string) *core.Export {
	return &core.Export{
		LastUpdated:    p.UpdatedAt.UTC(),
		PlayerName:     p.PlayerName,
		GameVersion:    p.GameVersion,
		TotalKills:     p.TotalKills,
		NPCKills:       p.NPCKills,
		PlayerKills:    p.PlayerKills,
		UniqueTransits: transits,
		UniquePlayers:  players,
		PlayersKilled:  killed,
		DetectedZones:  zones,
	}
}

// KillRecordToCore converts a GORM KillRecord to a core.KillRecord.
func KillRecordToCore(k model.KillRecord) core.KillRecord {
	return core.KillRecord{
		Time:     k.Time,
		Victim:   k.Victim,
		IsPlayer: k.IsPlayer,
		Zone:     k.Zone,
		Weapon:   k.Weapon,
		Damage:   k.DamageType,
		Position: pointToPosition3D(k.Position),
	}
}

// VehicleRecordToCore converts a GORM VehicleRecord to a core.Vehicle.
// A history that fails to decode is returned empty.
func VehicleRecordToCore(v model.VehicleRecord) core.Vehicle {
	var history []core.VehicleTransition
	if len(v.History) > 0 {
		_ = json.Unmarshal(v.History, &history)
	}

	return core.Vehicle{
		ID:         v.ObjectID,
		Name:       v.Name,
		State:      core.DestructionState(v.State),
		Position:   pointToPosition3D(v.Position),
		Zone:       v.Zone,
		Driver:     v.Driver,
		LastUpdate: v.Time,
		History:    history,
	}
}
