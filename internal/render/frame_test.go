package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yertz/yapr/internal/clock"
	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

func newWorld(t *testing.T) (*world.Model, *clock.FakeClock) {
	t.Helper()
	clk := clock.Fake(t0)
	m := world.New(world.WithClock(clk))
	m.ResolveIdentity(core.Identity{PlayerName: "Alice_01", GameVersion: "4.01"}, world.SourceLive)
	return m, clk
}

func TestBuild_Players(t *testing.T) {
	m, clk := newWorld(t)

	m.ObservePlayer("Bob_7", &core.Position3D{X: 1, Y: 2, Z: 3}, world.ObserveSighting)
	clk.Advance(5 * time.Second)
	m.ObservePlayer("Carol_9", nil, world.ObserveDeath)
	m.ObservePlayer("Alice_01", nil, world.ObserveSighting)

	f := Build(m.Snapshot(), nil, DarkPalette)

	require.Len(t, f.Players, 2)
	assert.Equal(t, "Carol_9", f.Players[0].Name)
	assert.Equal(t, StatusDead, f.Players[0].Status)
	assert.Equal(t, DarkPalette.Dead, f.Players[0].Color)
	assert.Equal(t, "Bob_7", f.Players[1].Name)
	assert.Equal(t, "Bob_7 (seen 5s ago)", f.Players[1].Text)
	assert.NotNil(t, f.Players[1].Position)

	assert.Equal(t, "dark", f.Theme)
	assert.Equal(t, core.Unknown, f.Station)
	assert.Equal(t, "Alice_01", f.Identity.PlayerName)
}

func TestBuild_PingsAndMarkers(t *testing.T) {
	m, clk := newWorld(t)

	m.AddPing("TransitManager-001", core.Ping{
		Position:   core.Position3D{X: 10},
		Action:     "FINISH",
		Tag:        core.TagTransit,
		PlayerName: "Bob_7",
	})
	m.ObservePosition("", "", core.Position3D{X: 5, Y: 5, Z: 5})
	clk.Advance(10 * time.Second)

	pos := core.Position3D{X: 1}
	f := Build(m.Snapshot(), &pos, DarkPalette)

	require.Len(t, f.Pings, 1)
	ping := f.Pings[0]
	assert.Equal(t, "TransitManager-001", ping.Key)
	assert.Equal(t, "Bob_7 | 001 | FINISH | (10s ago)", ping.Label)
	assert.Equal(t, DarkPalette.Player, ping.LabelColor)
	assert.NotEqual(t, "#ffffff", ping.Color)
	assert.InDelta(t, 35, ping.Remaining, 0.001)
	assert.True(t, ping.Newest)

	require.Len(t, f.Markers, 1, "pinged entities are drawn as pings only")
	assert.True(t, strings.HasPrefix(f.Markers[0].Key, "obj_"))
	assert.Equal(t, &pos, f.PlayerPosition)
}

func TestBuild_VehiclesAndZones(t *testing.T) {
	m, clk := newWorld(t)

	m.ApplyVehicleTransition(world.VehicleUpdate{
		ID:       "1001",
		Name:     "ANVL_Hornet_F7C_1001",
		Zone:     "Stanton1",
		Attacker: "Bob_7",
		From:     core.Alive,
		To:       core.Softed,
	})
	clk.Advance(3 * time.Second)
	m.DetectVehicleCandidate()
	for i := 0; i < TopZones+2; i++ {
		m.RecordZone(fmt.Sprintf("Zone%d", i), "test")
	}
	clk.Advance(2 * time.Second)

	f := Build(m.Snapshot(), nil, LightPalette)

	require.Len(t, f.Vehicles, 2)
	assert.Equal(t, "Vehicle? - POTENTIAL - 2s ago", f.Vehicles[0].Text)
	assert.Equal(t, "ANVL - Softed (by Bob_7) - 5s ago", f.Vehicles[1].Text)
	assert.Equal(t, core.Softed, f.Vehicles[1].State)

	assert.Len(t, f.Zones, TopZones)
	assert.Equal(t, "light", f.Theme)
}

func TestBuild_Events(t *testing.T) {
	m, _ := newWorld(t)
	m.AddEvent(core.EventNPCKill, "[NPC KILL] Killed Grunt")

	f := Build(m.Snapshot(), nil, DarkPalette)

	require.NotEmpty(t, f.Events)
	assert.Equal(t, "[NPC KILL] Killed Grunt", f.Events[0].Message)
	assert.Equal(t, "12:00:00", f.Events[0].Time)
	assert.Equal(t, DarkPalette.Events[core.EventNPCKill], f.Events[0].Color)

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"players":[]`)
}

func TestPingLabel(t *testing.T) {
	age := 4 * time.Second

	assert.Equal(t, "Habs Transit | START | (4s ago)",
		PingLabel("TransitManager_Habs Transit", core.Ping{Action: "START"}, age))

	long := strings.Repeat("ABCDEFGHIJ", 4)
	got := PingLabel(long, core.Ping{Action: "DETECTED"}, age)
	assert.True(t, strings.HasPrefix(got, long[:27]+"... | DETECTED"), got)

	veh := core.Ping{
		VehicleName: "ANVL_Hornet_F7C_1001",
		Attacker:    "Bob_7",
		VictimName:  "Carol_9",
		Action:      "Alive→Softed",
	}
	assert.Equal(t, "Carol_9 | ANVL | by Bob_7 | Hornet | Alive→Softed | (4s ago)",
		PingLabel("Hornet", veh, age))
}
