package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/yertz/yapr/internal/model"
	"github.com/yertz/yapr/pkg/core"
)

// position3DToPoint converts a core.Position3D to an XYZ geom.Point
func position3DToPoint(p core.Position3D) geom.Point {
	coords := geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}, Z: p.Z, Type: geom.DimXYZ}
	return geom.NewPoint(coords)
}

// historyToJSON converts a transition history to datatypes.JSON for DB storage.
func historyToJSON(h []core.VehicleTransition) datatypes.JSON {
	if len(h) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(h)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// CoreToProfile converts the scalar fields of a core.Export to the profile row.
func CoreToProfile(e core.Export) model.Profile {
	return model.Profile{
		ID:          model.ProfileID,
		UpdatedAt:   e.LastUpdated,
		PlayerName:  e.PlayerName,
		GameVersion: e.GameVersion,
		TotalKills:  e.TotalKills,
		NPCKills:    e.NPCKills,
		PlayerKills: e.PlayerKills,
	}
}

// CoreToKillRecord converts a core.KillRecord to a GORM model.KillRecord.
func CoreToKillRecord(k core.KillRecord) model.KillRecord {
	return model.KillRecord{
		Time:       k.Time,
		Victim:     k.Victim,
		IsPlayer:   k.IsPlayer,
		Zone:       k.Zone,
		Weapon:     k.Weapon,
		DamageType: k.Damage,
		Position:   position3DToPoint(k.Position),
	}
}

// CoreToVehicleRecord converts a core.Vehicle to a GORM model.VehicleRecord.
// core.Vehicle.ID maps to VehicleRecord.ObjectID.
func CoreToVehicleRecord(v core.Vehicle) model.VehicleRecord {
	return model.VehicleRecord{
		Time:     v.LastUpdate,
		ObjectID: v.ID,
		Name:     v.Name,
		State:    uint8(v.State),
		Zone:     v.Zone,
		Driver:   v.Driver,
		Position: position3DToPoint(v.Position),
		History:  historyToJSON(v.History),
	}
}

// TransitRows converts names to transit location rows.
func TransitRows(names []string) []model.TransitLocation {
	rows := make([]model.TransitLocation, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.TransitLocation{Name: n})
	}
	return rows
}

// PlayerRows converts names to player name rows.
func PlayerRows(names []string) []model.PlayerName {
	rows := make([]model.PlayerName, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.PlayerName{Name: n})
	}
	return rows
}

// KilledRows converts names to killed player rows.
func KilledRows(names []string) []model.KilledPlayer {
	rows := make([]model.KilledPlayer, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.KilledPlayer{Name: n})
	}
	return rows
}

// ZoneRows converts names to zone rows.
func ZoneRows(names []string) []model.Zone {
	rows := make([]model.Zone, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.Zone{Name: n})
	}
	return rows
}
