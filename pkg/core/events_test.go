package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeExports(t *testing.T) {
	stored := &Export{
		PlayerName:     "Alice",
		TotalKills:     10,
		UniqueTransits: []string{"Elevator", "HangarLobby"},
		UniquePlayers:  []string{"Bob"},
		DetectedZones:  []string{"Checkmate"},
	}
	current := Export{
		PlayerName:     "Alice",
		GameVersion:    "4.1.0",
		TotalKills:     2,
		UniqueTransits: []string{"Elevator", "Habs Transit"},
		PlayersKilled:  []string{"Carol"},
	}

	out := MergeExports(stored, current)
	assert.Equal(t, 2, out.TotalKills)
	assert.Equal(t, "4.1.0", out.GameVersion)
	assert.Equal(t, []string{"Elevator", "Habs Transit", "HangarLobby"}, out.UniqueTransits)
	assert.Equal(t, []string{"Bob"}, out.UniquePlayers)
	assert.Equal(t, []string{"Carol"}, out.PlayersKilled)
	assert.Equal(t, []string{"Checkmate"}, out.DetectedZones)
}

func TestMergeExports_NilStored(t *testing.T) {
	out := MergeExports(nil, Export{UniquePlayers: []string{"b", "a", "b"}})
	assert.Equal(t, []string{"a", "b"}, out.UniquePlayers)
	assert.Equal(t, []string{}, out.DetectedZones)
}

func TestEmptyExport(t *testing.T) {
	e := EmptyExport()
	assert.Equal(t, Unknown, e.PlayerName)
	assert.Equal(t, Unknown, e.GameVersion)
	assert.NotNil(t, e.UniqueTransits)
}
