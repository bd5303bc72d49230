package parser

import "strings"

func matchDoor(l Line) (Event, bool) {
	m := landingDoorRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	return Door{Name: strings.TrimSpace(m[1]), State: strings.TrimSpace(m[2])}, true
}

func matchCarriage(l Line) (Event, bool) {
	m := carriageRe.FindStringSubmatch(l.Raw)
	if m == nil {
		return nil, false
	}
	pos, ok := parsePosition(m[6], m[7], m[8])
	if !ok {
		return nil, false
	}
	return Carriage{
		Number:   m[1],
		ID:       m[2],
		Manager:  m[3],
		Starting: strings.Contains(strings.ToLower(m[4]), "start"),
		Zone:     m[5],
		Position: pos,
	}, true
}
