package jsonfile

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yertz/yapr/pkg/core"
)

func newBackend(t *testing.T, compress bool) *Backend {
	t.Helper()
	b := New(Config{Path: filepath.Join(t.TempDir(), "out", "yapr_export.json"), CompressOutput: compress})
	require.NoError(t, b.Init())
	return b
}

func readRaw(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}

func TestInit_CreatesZeroedFile(t *testing.T) {
	b := newBackend(t, false)

	raw := readRaw(t, b.Target())
	assert.Equal(t, "Unknown", raw["player_name"])
	assert.Equal(t, float64(0), raw["total_kills"])
	assert.Equal(t, []any{}, raw["unique_transits"])
	assert.Contains(t, raw, "last_updated")
	assert.Contains(t, raw, "detected_zones")
}

func TestInit_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yapr_export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"player_name":"Alice","total_kills":3}`), 0644))

	b := New(Config{Path: path})
	require.NoError(t, b.Init())

	e, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "Alice", e.PlayerName)
	assert.Equal(t, 3, e.TotalKills)
	assert.Equal(t, core.Unknown, e.GameVersion)
}

func TestLoad_MissingFile(t *testing.T) {
	b := New(Config{Path: filepath.Join(t.TempDir(), "none.json")})

	e, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, core.Unknown, e.PlayerName)
	assert.Equal(t, 0, e.TotalKills)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yapr_export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"total_kills": `), 0644))

	b := New(Config{Path: path})
	e, err := b.Load()
	assert.Error(t, err)
	assert.Nil(t, e)
}

func TestLoad_LegacyTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yapr_export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"last_updated":"2024-05-01T12:30:00.123456"}`), 0644))

	e, err := New(Config{Path: path}).Load()
	require.NoError(t, err)
	assert.Equal(t, 2024, e.LastUpdated.Year())
	assert.Equal(t, 30, e.LastUpdated.Minute())
}

func TestSave_MergesSetsAndOverwritesScalars(t *testing.T) {
	b := newBackend(t, false)

	require.NoError(t, b.Save(&core.Export{
		LastUpdated:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PlayerName:     "Alice",
		GameVersion:    "4.0.2",
		TotalKills:     5,
		NPCKills:       4,
		PlayerKills:    1,
		UniqueTransits: []string{"Elevator"},
		UniquePlayers:  []string{"Bob", "Carol"},
		PlayersKilled:  []string{"Bob"},
		DetectedZones:  []string{"Checkmate"},
	}))

	require.NoError(t, b.Save(&core.Export{
		LastUpdated:    time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		PlayerName:     "Alice",
		GameVersion:    "4.1.0",
		TotalKills:     2,
		NPCKills:       2,
		UniqueTransits: []string{"HangarLobby"},
		UniquePlayers:  []string{"Dave", "Bob"},
		DetectedZones:  []string{"Orbituary"},
	}))

	e, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "4.1.0", e.GameVersion)
	assert.Equal(t, 2, e.TotalKills)
	assert.Equal(t, 0, e.PlayerKills)
	assert.Equal(t, []string{"Elevator", "HangarLobby"}, e.UniqueTransits)
	assert.Equal(t, []string{"Bob", "Carol", "Dave"}, e.UniquePlayers)
	assert.Equal(t, []string{"Bob"}, e.PlayersKilled)
	assert.Equal(t, []string{"Checkmate", "Orbituary"}, e.DetectedZones)
	assert.Equal(t, 2, e.LastUpdated.Day())
}

func TestSave_ReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yapr_export.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0644))

	b := New(Config{Path: path})
	require.NoError(t, b.Save(&core.Export{PlayerName: "Alice", DetectedZones: []string{"Z"}}))

	e, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, "Alice", e.PlayerName)
	assert.Equal(t, []string{"Z"}, e.DetectedZones)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSave_Compressed(t *testing.T) {
	b := newBackend(t, true)
	require.NoError(t, b.Save(&core.Export{PlayerName: "Alice", NPCKills: 9, TotalKills: 9}))

	f, err := os.Open(b.Target())
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.NewDecoder(gz).Decode(&raw))
	assert.Equal(t, float64(9), raw["npc_kills"])

	e, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, 9, e.TotalKills)
}

func TestInit_EmptyPath(t *testing.T) {
	assert.Error(t, New(Config{}).Init())
}
