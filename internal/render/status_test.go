package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yertz/yapr/pkg/core"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	ts := t0.Add(-d)
	return &ts
}

func TestEntityStatus(t *testing.T) {
	tests := []struct {
		name   string
		entity core.Entity
		want   PlayerStatus
	}{
		{"alive", core.Entity{Status: core.StatusAlive, LastSeen: t0.Add(-10 * time.Second)}, StatusAlive},
		{"faded", core.Entity{Status: core.StatusAlive, LastSeen: t0.Add(-200 * time.Second)}, StatusFaded},
		{"stale", core.Entity{Status: core.StatusAlive, LastSeen: t0.Add(-400 * time.Second)}, StatusStale},
		{"dead", core.Entity{Status: core.StatusDead, LastSeen: t0.Add(-400 * time.Second)}, StatusDead},
		{"incap", core.Entity{Status: core.StatusIncap, LastSeen: t0}, StatusIncap},
		{"spawn reset wins", core.Entity{Status: core.StatusDead, SpawnReset: true, SpawnResetTS: ago(time.Minute)}, StatusSpawnReset},
		{"old spawn reset", core.Entity{Status: core.StatusDead, SpawnReset: true, SpawnResetTS: ago(10 * time.Minute)}, StatusDead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntityStatus(tt.entity, t0))
		})
	}
}

func TestStatusColor(t *testing.T) {
	p := DarkPalette
	assert.Equal(t, p.Dead, p.StatusColor(StatusDead))
	assert.Equal(t, p.Alive, p.StatusColor(StatusAlive))
	assert.Equal(t, p.Faded, p.StatusColor(StatusSpawnReset))
	assert.Equal(t, p.Stale, p.StatusColor(StatusStale))
}

func TestPlayerText(t *testing.T) {
	dead := core.Entity{
		Key:      "Bob_7",
		Status:   core.StatusDead,
		DeathTS:  ago(12 * time.Second),
		LastSeen: t0.Add(-3 * time.Second),
	}
	assert.Equal(t, "Bob_7 (dead for 12s, seen 3s ago)", PlayerText(dead, t0))

	reset := core.Entity{
		Key:          "Carol_9",
		Status:       core.StatusAlive,
		SpawnReset:   true,
		SpawnResetTS: ago(0),
		LastSeen:     t0,
	}
	assert.Equal(t, "Carol_9 (Reset Spawn, seen 0s ago)", PlayerText(reset, t0))

	incap := core.Entity{Key: "Dave_2", Status: core.StatusIncap, LastSeen: t0.Add(-time.Second)}
	assert.Equal(t, "Dave_2 (incap, seen 1s ago)", PlayerText(incap, t0))
}
