package parser

import (
	"strings"

	"github.com/yertz/yapr/internal/util"
)

// nameBlacklist holds lower-cased identifiers that show up in name positions
// but never refer to a player.
var nameBlacklist = map[string]struct{}{
	"team_gameservices": {}, "insured": {}, "instance": {}, "game": {}, "localclient": {},
	"telemetryservice": {}, "networkbinding": {}, "streamengine": {}, "physicssystem": {},
	"default": {}, "persistentstreamingservice": {}, "loadoutservice": {}, "server": {},
	"requested": {}, "haptic": {}, "[team_gameservices][haptic]": {},
	"elevator": {}, "npc kill": {}, "player kill": {}, "npc_kill": {}, "player_kill": {},
	"door": {}, "hangardoor": {}, "lobbydoor": {}, "landingarea": {},
	"carriage": {}, "manager": {}, "habs": {}, "lobby": {}, "hangar": {}, "ghost arena": {},
	"dungeon": {}, "exfil": {}, "exhang": {}, "side entrance": {}, "maintenance": {},
	"cz station": {}, "orbituary": {}, "ruin station": {}, "unknown": {}, "entity": {},
}

var npcMarkers = []string{
	"pu_human_enemy", "npc_", "_npc_", "groundcombat", "contestedzones",
	"ai_", "_ai_", "bot_", "_bot_",
}

// IsValidPlayerName reports whether name can be a player handle.
func IsValidPlayerName(name string) bool {
	n := strings.TrimSpace(name)
	if n == "" {
		return false
	}
	lower := strings.ToLower(n)
	if _, ok := nameBlacklist[lower]; ok {
		return false
	}
	if strings.HasPrefix(lower, "team_") || strings.HasPrefix(lower, "srv_") {
		return false
	}
	if util.ContainsAny(lower, "ui_entity", "pu_pilots", "human-civilian-pilot", "civilian_pilot") {
		return false
	}
	if util.IsDigits(n) || len(n) <= 2 {
		return false
	}
	if strings.ContainsAny(n, `/\@:`) {
		return false
	}
	// "Snew_J" and "Death_Toll007" are fine, "pu_human_enemy_6392618593887" is not.
	if parts := strings.Split(n, "_"); len(parts) > 2 {
		last := parts[len(parts)-1]
		if util.IsDigits(last) && len(last) >= 10 {
			return false
		}
	}
	return true
}

// IsNPCName reports whether name looks like a spawned NPC identifier.
func IsNPCName(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	if util.ContainsAny(lower, npcMarkers...) {
		return true
	}
	if strings.Contains(lower, "_") {
		parts := strings.Split(lower, "_")
		last := parts[len(parts)-1]
		if util.IsDigits(last) && len(last) >= 10 {
			return true
		}
	}
	return false
}

// NPCDisplayName shortens an NPC identifier to its archetype,
// e.g. "PU_Human_Enemy_GroundCombat_NPC_Grunt_123" becomes "Grunt".
func NPCDisplayName(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return "NPC"
	}
	return util.Capitalize(parts[len(parts)-2])
}
