package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tabler interface{ TableName() string }

func TestTableNames(t *testing.T) {
	want := []string{
		"profiles",
		"transit_locations",
		"player_names",
		"killed_players",
		"zones",
		"kill_records",
		"vehicle_records",
	}
	var got []string
	for _, m := range DatabaseModels {
		tm, ok := m.(tabler)
		if assert.True(t, ok, "%T has no TableName", m) {
			got = append(got, tm.TableName())
		}
	}
	assert.Equal(t, want, got)
}

func TestSetModelsAreMigrated(t *testing.T) {
	for _, m := range SetModels {
		assert.Contains(t, DatabaseModels, m)
	}
}
