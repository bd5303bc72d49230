package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yertz/yapr/pkg/core"
)

func TestNormalizeManager(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		station string
		want    string
	}{
		{"alias", "TransitManager-001", "", "Elevator"},
		{"numeric suffix stripped", "TransitManager_Habs_03", "", "Habs Transit"},
		{"lettered entrance alias", "TransitManager_Dungeon_EntranceA_002", "", "Ghost Arena A (F2)"},
		{"lettered entrance underscore", "TransitManager_Dungeon_Entrance_E", "", "Dungeon Entrance E"},
		{"lettered exit", "TransitManager_Dungeon_Exit_B_01", "", "Dungeon Exit B"},
		{"lettered exfil", "TransitManager_Dungeon_Exfil_C", "", "D Exfil (C)"},
		{"lowercase letter", "transitmanager_dungeon_exit_d", "", "Dungeon Exit D"},
		{"station substitution", "rs_int_p6leo_ruinstation", "Checkmate", "Ruin Checkmate"},
		{"default station", "rs_int_p6leo_ruinstation", "", "Ruin Station"},
		{"raw fallback", "TransitManager_Unknown_12", "Checkmate", "TransitManager_Unknown"},
		{"raw fallback with station", "SomeStation_Lift", "Pyro", "SomePyro_Lift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeManager(tt.raw, tt.station))
		})
	}
}

func TestClassifyTag(t *testing.T) {
	assert.Equal(t, core.TagExit, ClassifyTag("TransitManager_Dungeon_Exfil_A"))
	assert.Equal(t, core.TagExit, ClassifyTag("TransitManager_Dungeon_Exit_B"))
	assert.Equal(t, core.TagDungeon, ClassifyTag("TransitManager_Dungeon_EntranceA"))
	assert.Equal(t, core.TagTransit, ClassifyTag("TransitManager_Hangar-to-Lobby"))
	assert.Equal(t, core.TagTransit, ClassifyTag("p2l4_contestedzone"))
}

func TestIsHubKey(t *testing.T) {
	assert.True(t, IsHubKey("Elevator"))
	assert.True(t, IsHubKey("HangarLobby"))
	assert.True(t, IsHubKey("TransitManager_Habs"))
	assert.True(t, IsHubKey("Checkmate MetroPlatform West"))
	assert.False(t, IsHubKey("Ghost Arena A (F2)"))
	assert.False(t, IsHubKey("Player Kill"))
}

func TestStationName(t *testing.T) {
	assert.Equal(t, "Checkmate", StationName("pyro_checkmate"))
	assert.Equal(t, "Checkmate", StationName("@pyro_checkmate"))
	assert.Equal(t, "Ruinstation", StationName("Ruin_Station"))
}
