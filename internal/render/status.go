package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/yertz/yapr/pkg/core"
)

// PlayerStatus is how a player row is drawn.
type PlayerStatus string

const (
	StatusSpawnReset PlayerStatus = "spawn_reset"
	StatusDead       PlayerStatus = "dead"
	StatusIncap      PlayerStatus = "incap"
	StatusAlive      PlayerStatus = "alive"
	StatusFaded      PlayerStatus = "faded"
	StatusStale      PlayerStatus = "stale"
)

// Player row thresholds.
const (
	SpawnResetVisible = 300 * time.Second
	AliveWindow       = 180 * time.Second
	FadedWindow       = 300 * time.Second
)

// EntityStatus classifies a player entity for display. A recent spawn reset
// wins over everything else, then the dead and incap states, then the age
// of the last sighting.
func EntityStatus(e core.Entity, now time.Time) PlayerStatus {
	if recentSpawnReset(e, now) {
		return StatusSpawnReset
	}
	switch e.Status {
	case core.StatusDead:
		return StatusDead
	case core.StatusIncap:
		return StatusIncap
	}
	age := now.Sub(e.LastSeen)
	switch {
	case age < AliveWindow:
		return StatusAlive
	case age < FadedWindow:
		return StatusFaded
	default:
		return StatusStale
	}
}

// StatusColor returns the palette colour for s.
func (p Palette) StatusColor(s PlayerStatus) string {
	switch s {
	case StatusDead:
		return p.Dead
	case StatusIncap:
		return p.Incap
	case StatusAlive:
		return p.Alive
	case StatusFaded, StatusSpawnReset:
		return p.Faded
	default:
		return p.Stale
	}
}

// PlayerText is the player list line, e.g. "Bob_7 (dead for 12s, seen 3s ago)".
func PlayerText(e core.Entity, now time.Time) string {
	var parts []string
	if recentSpawnReset(e, now) {
		parts = append(parts, "Reset Spawn")
	}
	switch e.Status {
	case core.StatusDead:
		death := now
		if e.DeathTS != nil {
			death = *e.DeathTS
		}
		parts = append(parts, fmt.Sprintf("dead for %ds", int(now.Sub(death).Seconds())))
	case core.StatusIncap:
		parts = append(parts, "incap")
	}
	parts = append(parts, fmt.Sprintf("seen %ds ago", int(now.Sub(e.LastSeen).Seconds())))
	return fmt.Sprintf("%s (%s)", e.Key, strings.Join(parts, ", "))
}

func recentSpawnReset(e core.Entity, now time.Time) bool {
	return e.SpawnReset && e.SpawnResetTS != nil && now.Sub(*e.SpawnResetTS) < SpawnResetVisible
}
