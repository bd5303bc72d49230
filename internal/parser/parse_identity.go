package parser

import (
	"strings"

	"github.com/yertz/yapr/pkg/core"
)

// DetectIdentity extracts identity fields from raw. The bootstrap scan and
// the live classifier both use it, so the two paths agree on what counts as
// a detection.
func DetectIdentity(raw string) (IdentityMatch, bool) {
	var m IdentityMatch
	found := false

	if sub := loginRe.FindStringSubmatch(raw); sub != nil {
		m.Login = sub[1]
		found = true
	}
	if sub := versionRe.FindStringSubmatch(raw); sub != nil {
		m.GameVersion = formatVersion(sub[1])
		found = true
	}
	if sub := playerIDRe.FindStringSubmatch(raw); sub != nil {
		m.PlayerID = sub[1]
		m.PlayerIDFor = sub[2]
		found = true
	}
	if sub := geidRe.FindStringSubmatch(raw); sub != nil {
		m.GEID = sub[1]
		found = true
	}
	return m, found
}

// formatVersion turns the three-digit build token into "d.dd" (401 becomes 4.01).
func formatVersion(num string) string {
	if len(num) == 3 {
		return num[:1] + "." + num[1:]
	}
	return num
}

// Candidate resolves the match against the identity known so far and returns
// the identity the line argues for. Fields the line says nothing about are
// left Unknown (or empty for the player ID).
func (m IdentityMatch) Candidate(current core.Identity, raw string) core.Identity {
	c := core.NewIdentity()
	if m.Login != "" {
		c.PlayerName = m.Login
	}
	if m.GameVersion != "" {
		c.GameVersion = m.GameVersion
	}

	// The player ID is only taken while still unknown.
	if current.PlayerID != "" {
		return c
	}
	name := current.PlayerName
	if c.PlayerName != core.Unknown {
		name = c.PlayerName
	}
	if m.PlayerID != "" && (name == core.Unknown || m.PlayerIDFor == name) {
		c.PlayerID = m.PlayerID
	}
	if m.GEID != "" {
		switch {
		case name != core.Unknown && strings.Contains(raw, name):
			c.PlayerID = m.GEID
		case c.PlayerID == "":
			c.PlayerID = m.GEID
		}
	}
	return c
}
