package parser

import "strings"

func matchNickname(l Line) (Event, bool) {
	m := nickRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Nickname{
		Name:     strings.TrimSpace(m[1]),
		Position: l.RecentPosition(AssociationLookback),
	}, true
}

func matchCorpsify(l Line) (Event, bool) {
	m := corpsifyRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Corpsify{Name: strings.TrimSpace(m[1])}, true
}

func matchIncap(l Line) (Event, bool) {
	m := incapRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Incap{Name: strings.TrimSpace(m[1]), Causes: strings.TrimSpace(m[2])}, true
}

// matchCorpse only looks at corpse notices; "Player '...'" alone is too common.
func matchCorpse(l Line) (Event, bool) {
	if !strings.Contains(l.Raw, "Corpse>") && !strings.Contains(strings.ToLower(l.Raw), "corpsify") {
		return nil, false
	}
	m := corpseRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Corpse{Name: strings.TrimSpace(m[1])}, true
}

func matchStall(l Line) (Event, bool) {
	m := stallRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Stall{Name: strings.TrimSpace(m[1]), Type: m[2], Length: m[3]}, true
}

func matchPlayerMention(l Line) (Event, bool) {
	m := playerEventRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return PlayerMention{Name: strings.TrimSpace(m[1])}, true
}

func matchStatusEffect(l Line) (Event, bool) {
	m := statusEffectRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return StatusEffect{Name: strings.TrimSpace(m[1]), Effect: strings.TrimSpace(m[2])}, true
}

func matchSpawnFlow(l Line) (Event, bool) {
	m := spawnFlowRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return SpawnFlow{Name: strings.TrimSpace(m[1]), PlayerID: m[2]}, true
}

// matchEntityDetach reports the first name that is repeated later on the line,
// which is how detach notices name the owning player.
func matchEntityDetach(l Line) (Event, bool) {
	if !strings.Contains(l.Raw, "CEntity::OnOwnerRemoved") && !strings.Contains(l.Raw, "force detaching ENTITY ATTACHMENT") {
		return nil, false
	}
	all := detachNameRe.FindAllStringSubmatch(l.Raw, -1)
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if strings.EqualFold(all[i][1], all[j][1]) {
				return EntityDetach{Name: strings.TrimSpace(all[i][1])}, true
			}
		}
	}
	return nil, false
}

func matchHostility(l Line) (Event, bool) {
	m := hostilityRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Hostility{Attacker: strings.TrimSpace(m[1]), Target: strings.TrimRight(strings.TrimSpace(m[3]), ".")}, true
}
