package parser

// Kill chain variants, in the order they are tried.
const (
	KillPrimary   = "primary"
	KillNarrative = "narrative"
	KillFallback  = "fallback"
)

// killPattern is one alternative of the kill chain.
type killPattern struct {
	variant string
	extract func(raw string) (Kill, bool)
}

// KillChain tries the kill patterns in order and stops at the first match.
type KillChain struct {
	patterns []killPattern
}

// NewKillChain builds the primary, narrative and fallback chain.
func NewKillChain() KillChain {
	return KillChain{patterns: []killPattern{
		{KillPrimary, extractPrimaryKill},
		{KillNarrative, extractNarrativeKill},
		{KillFallback, extractFallbackKill},
	}}
}

// Match returns the kill parsed by the first pattern that matches l.
func (c KillChain) Match(l Line) (Event, bool) {
	for _, p := range c.patterns {
		k, ok := p.extract(l.Raw)
		if !ok {
			continue
		}
		k.Variant = p.variant
		k.Position = l.PositionMentioning(k.Victim)
		return k, true
	}
	return nil, false
}

func extractPrimaryKill(raw string) (Kill, bool) {
	m := deathRe.FindStringSubmatch(raw)
	if m == nil {
		return Kill{}, false
	}
	return Kill{
		Victim:      m[1],
		Zone:        m[3],
		Killer:      m[4],
		Weapon:      m[6],
		WeaponClass: m[7],
		DamageType:  m[8],
	}, true
}

func extractNarrativeKill(raw string) (Kill, bool) {
	m := deathAltRe.FindStringSubmatch(raw)
	if m == nil {
		return Kill{}, false
	}
	return Kill{
		Victim:      m[1],
		Zone:        m[2],
		Killer:      m[3],
		Weapon:      m[4],
		WeaponClass: m[5],
		DamageType:  m[6],
	}, true
}

// extractFallbackKill accepts partial kill lines; every field but the victim
// may be missing.
func extractFallbackKill(raw string) (Kill, bool) {
	m := deathFallbackRe.FindStringSubmatch(raw)
	if m == nil {
		return Kill{}, false
	}
	return Kill{
		Victim:     m[1],
		Zone:       m[2],
		Killer:     m[3],
		Weapon:     m[4],
		DamageType: m[5],
	}, true
}
