package parser

import (
	"regexp"
	"strings"

	"github.com/yertz/yapr/internal/util"
	"github.com/yertz/yapr/pkg/core"
)

// DefaultStation is the station placeholder used before a landing zone is seen.
const DefaultStation = "Station"

// managerAliases maps raw transit manager identifiers to display names.
var managerAliases = map[string]string{
	"TransitManager_Hangar-to-Lobby":            "HangarLobby",
	"TransitManager-001":                        "Elevator",
	"TransitManager_Dungeon_EntranceA":          "Ghost Arena A (F2)",
	"TransitManager_Dungeon_EntranceB":          "Ghost Arena B (F1)",
	"TransitManager_Dungeon_EntranceC":          "Ghost Arena C (Arcade)",
	"TransitManager_Dungeon_EntranceD":          "Dungeon Entrance D",
	"TransitManager_Dungeon_EntranceE":          "Dungeon Entrance E",
	"TransitManager_Dungeon_EntranceF":          "Dungeon Entrance F",
	"p2l4_contestedzone":                        "CZ Station Lobby Lifts",
	"p5l2_contestedzone":                        "Orbituary CZ Lobby Lifts",
	"rs_int_p6leo_ruinstation":                  "Ruin Station",
	"TransitManager_TransitDungeonSideEntrance": "Dungeon Entrance 02",
	"TransitManager_TransitDungeonMaintenance":  "Dungeon Maintenance",
	"TransitManager_DungeonExec_RewardHangar":   "EXHANG",
	"TransitManager_Dungeon_Exfil_A":            "D Exfil (A)",
	"TransitManager_Dungeon_Exfil_B":            "D Exfil (B)",
	"TransitManager_Dungeon_Exfil_C":            "D Exfil (C)",
	"TransitManager_Dungeon_Exfil_D":            "D Exfil (D)",
	"TransitManager_Dungeon_Exfil_E":            "D Exfil (E)",
	"TransitManager_Dungeon_Exfil_F":            "D Exfil (F)",
	"TransitManager_TransitDungeonMainEntrance": "Dungeon Entrance 04",
	"TransitManager_Habs":                       "Habs Transit",
}

// hubKeys are high-traffic transit keys that keep only their newest ping.
var hubKeys = []string{
	"Elevator", "HangarLobby", "Habs Transit", "TransitManager-001",
	"TransitManager_Hangar-to-Lobby", "TransitManager_Habs", "Spaceport-to-Hangars",
	"Internal", "Spaceport_to_Hangars", "MetroPlatform",
}

var (
	numericSuffixRe   = regexp.MustCompile(`_[0-9]+$`)
	dungeonEntranceRe = regexp.MustCompile(`(?i)Dungeon_Entrance_?([A-F])`)
	dungeonExitRe     = regexp.MustCompile(`(?i)Dungeon_Exit_?([A-F])`)
	dungeonExfilRe    = regexp.MustCompile(`(?i)Dungeon_Exfil_?([A-F])`)
)

// SetManagerAliases merges extra aliases into the table. Intended for
// configuration at startup, before any line is processed.
func SetManagerAliases(extra map[string]string) {
	for k, v := range extra {
		managerAliases[k] = v
	}
}

// NormalizeManager turns a raw transit manager identifier into a display name.
// station replaces the literal "Station" in aliased names.
func NormalizeManager(raw, station string) string {
	base := numericSuffixRe.ReplaceAllString(raw, "")

	if m := dungeonEntranceRe.FindStringSubmatch(base); m != nil {
		letter := strings.ToUpper(m[1])
		if alias, ok := managerAliases["TransitManager_Dungeon_Entrance"+letter]; ok {
			return alias
		}
		return "Dungeon Entrance " + letter
	}
	if m := dungeonExitRe.FindStringSubmatch(base); m != nil {
		return "Dungeon Exit " + strings.ToUpper(m[1])
	}
	if m := dungeonExfilRe.FindStringSubmatch(base); m != nil {
		letter := strings.ToUpper(m[1])
		if alias, ok := managerAliases["TransitManager_Dungeon_Exfil_"+letter]; ok {
			return alias
		}
		return "Dungeon Exfil " + letter
	}

	alias, ok := managerAliases[base]
	if !ok {
		alias = base
	}
	if station == "" {
		station = DefaultStation
	}
	return strings.ReplaceAll(alias, "Station", station)
}

// ClassifyTag derives the ping tag from a raw manager identifier.
func ClassifyTag(raw string) core.Tag {
	n := strings.ToLower(raw)
	switch {
	case strings.Contains(n, "exfil"), strings.Contains(n, "exit"):
		return core.TagExit
	case strings.Contains(n, "dungeon"):
		return core.TagDungeon
	default:
		return core.TagTransit
	}
}

// IsHubKey reports whether key is capped to a single ping.
func IsHubKey(key string) bool {
	return util.ContainsAny(key, hubKeys...)
}

// StationName converts a landing zone location token such as "pyro_checkmate"
// (with or without the leading "@") into a station display name.
func StationName(location string) string {
	n := strings.TrimPrefix(strings.ToLower(location), "@")
	n = strings.TrimPrefix(n, "pyro_")
	n = strings.ReplaceAll(n, "@", "")
	n = strings.ReplaceAll(n, "_", "")
	return util.Title(n)
}
