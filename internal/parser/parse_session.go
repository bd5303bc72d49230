package parser

import (
	"strings"

	"github.com/yertz/yapr/internal/util"
)

var spawnIndicators = []string{"bed", "hab", "medbay", "medical", "spawnpoint", "clinic"}

func matchIdentity(l Line) (Event, bool) {
	m, ok := DetectIdentity(l.Raw)
	if !ok {
		return nil, false
	}
	return m, true
}

func matchClientSpawned(l Line) (Event, bool) {
	if !spawnedRe.MatchString(l.Raw) {
		return nil, false
	}
	return ClientSpawned{}, true
}

func matchFrontendClosed(l Line) (Event, bool) {
	m := frontendClosedRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return FrontendClosed{LoadSeconds: m[1]}, true
}

// matchSpawnReset only reports reservations lost at a bed, hab or medical
// spawnpoint; other reservation changes are routine.
func matchSpawnReset(l Line) (Event, bool) {
	m := spawnResetRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	sp := spawnpointRe.FindStringSubmatch(l.Raw)
	if sp == nil {
		return nil, false
	}
	spawnpoint := strings.TrimSpace(sp[1])
	lower := strings.ToLower(spawnpoint)
	if lower == "unknown" {
		return nil, false
	}
	if !util.ContainsAny(lower, spawnIndicators...) {
		return nil, false
	}
	return SpawnReset{
		Name:       strings.TrimSpace(m[1]),
		PlayerID:   m[2],
		Spawnpoint: spawnpoint,
	}, true
}

func matchLocation(l Line) (Event, bool) {
	m := locationRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Location{Station: StationName(m[1])}, true
}

func matchPositionLine(l Line) (Event, bool) {
	m := posRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	pos, ok := parsePosition(m[1], m[2], m[3])
	if !ok {
		return nil, false
	}
	nick, manager := l.RecentSubject(AssociationLookback)
	return PositionLine{Position: pos, Nickname: nick, Manager: manager}, true
}
