package convert

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yertz/yapr/internal/model"
	"github.com/yertz/yapr/pkg/core"
)

func TestPosition3DToPoint(t *testing.T) {
	pos := core.Position3D{X: 100.5, Y: 200.5, Z: 50.0}
	pt := position3DToPoint(pos)

	coord, ok := pt.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 100.5, coord.XY.X)
	assert.Equal(t, 200.5, coord.XY.Y)
	assert.Equal(t, 50.0, coord.Z)
	assert.Equal(t, pos, pointToPosition3D(pt))
}

func TestHistoryToJSON_Empty(t *testing.T) {
	assert.Equal(t, "[]", string(historyToJSON(nil)))
}

func TestCoreToProfile(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := CoreToProfile(core.Export{
		LastUpdated: ts,
		PlayerName:  "Alice",
		GameVersion: "4.1.1",
		TotalKills:  7,
		NPCKills:    5,
		PlayerKills: 2,
	})

	assert.Equal(t, uint(model.ProfileID), p.ID)
	assert.Equal(t, ts, p.UpdatedAt)
	assert.Equal(t, "Alice", p.PlayerName)
	assert.Equal(t, 7, p.TotalKills)

	e := ProfileToExport(p, []string{"Elevator"}, nil, nil, []string{"Checkmate"})
	assert.Equal(t, "4.1.1", e.GameVersion)
	assert.Equal(t, 5, e.NPCKills)
	assert.Equal(t, 2, e.PlayerKills)
	assert.Equal(t, []string{"Elevator"}, e.UniqueTransits)
	assert.Equal(t, []string{"Checkmate"}, e.DetectedZones)
}

func TestKillRecordRoundTrip(t *testing.T) {
	k := core.KillRecord{
		Time:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Victim:   "PU_Pilots-Human-Criminal-Pilot_Light_1234567890",
		Zone:     "OOC_Stanton_1_Hurston",
		Weapon:   "behr_rifle_ballistic_01",
		Damage:   "Bullet",
		Position: core.Position3D{X: 1, Y: -2, Z: 3.5},
	}

	back := KillRecordToCore(CoreToKillRecord(k))
	assert.Equal(t, k, back)
}

func TestVehicleRecordRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	v := core.Vehicle{
		ID:       "200146296255",
		Name:     "ANVL_Arrow_200146296255",
		State:    core.FullDead,
		Position: core.Position3D{X: 10, Y: 20, Z: 30},
		Zone:     "pyro1",
		Driver:   "Bob",
		History: []core.VehicleTransition{
			{From: core.Alive, To: core.Softed, Attacker: "Alice", TS: ts},
			{From: core.Softed, To: core.FullDead, Attacker: "Alice", TS: ts},
		},
		LastUpdate: ts,
	}

	rec := CoreToVehicleRecord(v)
	assert.Equal(t, "200146296255", rec.ObjectID)
	assert.Equal(t, uint8(2), rec.State)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.History, &raw))
	assert.Len(t, raw, 2)

	back := VehicleRecordToCore(rec)
	assert.Equal(t, v.ID, back.ID)
	assert.Equal(t, v.State, back.State)
	assert.Equal(t, v.Position, back.Position)
	require.Len(t, back.History, 2)
	assert.Equal(t, core.FullDead, back.History[1].To)
	assert.True(t, ts.Equal(back.History[1].TS))
}

func TestVehicleRecordToCore_BadHistory(t *testing.T) {
	back := VehicleRecordToCore(model.VehicleRecord{ObjectID: "1", History: []byte("{")})
	assert.Empty(t, back.History)
}

func TestNameRows(t *testing.T) {
	names := []string{"a", "b"}
	assert.Len(t, TransitRows(names), 2)
	assert.Equal(t, "b", PlayerRows(names)[1].Name)
	assert.Equal(t, "a", KilledRows(names)[0].Name)
	assert.Empty(t, ZoneRows(nil))
}
