package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yertz/yapr/internal/parser"
	"github.com/yertz/yapr/internal/util"
	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

const (
	// TopZones is how many zone mentions a frame carries.
	TopZones = 5

	maxPingLabel = 30
)

var managerPrefixRe = regexp.MustCompile(`TransitManager[-_]?`)

// Frame is everything a display needs for one refresh.
type Frame struct {
	Taken          time.Time        `json:"taken"`
	Theme          string           `json:"theme"`
	Identity       IdentityRow      `json:"identity"`
	Counters       core.Counters    `json:"counters"`
	Station        string           `json:"station"`
	CurrentVehicle string           `json:"currentVehicle,omitempty"`
	PlayerPosition *core.Position3D `json:"playerPosition,omitempty"`
	Players        []PlayerRow      `json:"players"`
	Markers        []MarkerRow      `json:"markers"`
	Pings          []PingRow        `json:"pings"`
	Vehicles       []VehicleRow     `json:"vehicles"`
	Zones          []ZoneRow        `json:"zones"`
	Events         []EventRow       `json:"events"`
}

// IdentityRow is the header line.
type IdentityRow struct {
	PlayerName  string `json:"playerName"`
	PlayerID    string `json:"playerId,omitempty"`
	GameVersion string `json:"gameVersion"`
}

// PlayerRow is one line of the player list.
type PlayerRow struct {
	Name     string           `json:"name"`
	Status   PlayerStatus     `json:"status"`
	Color    string           `json:"color"`
	Text     string           `json:"text"`
	LastSeen time.Time        `json:"lastSeen"`
	Position *core.Position3D `json:"position,omitempty"`
}

// MarkerRow is a positioned entity with no live ping.
type MarkerRow struct {
	Key      string          `json:"key"`
	Kind     core.EntityKind `json:"kind"`
	Color    string          `json:"color"`
	Position core.Position3D `json:"position"`
}

// PingRow is one ping with its display colour and label.
type PingRow struct {
	Key        string          `json:"key"`
	Label      string          `json:"label"`
	Tag        core.Tag        `json:"tag"`
	Action     string          `json:"action"`
	Color      string          `json:"color"`
	LabelColor string          `json:"labelColor"`
	Age        float64         `json:"ageSeconds"`
	Remaining  float64         `json:"remainingSeconds"`
	Fresh      bool            `json:"fresh"`
	Newest     bool            `json:"newest"`
	Overlay    bool            `json:"overlay"`
	Anchor     core.Anchor     `json:"anchor,omitempty"`
	Position   core.Position3D `json:"position"`
}

// VehicleRow is one line of the vehicle list.
type VehicleRow struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	State core.DestructionState `json:"state"`
	Text  string                `json:"text"`
}

// ZoneRow is a recent zone mention.
type ZoneRow struct {
	Zone   string  `json:"zone"`
	Source string  `json:"source"`
	Age    float64 `json:"ageSeconds"`
}

// EventRow is one event log entry, newest first.
type EventRow struct {
	Time    string         `json:"time"`
	Kind    core.EventKind `json:"kind"`
	Color   string         `json:"color"`
	Message string         `json:"message"`
}

// Build renders s with palette p.
func Build(s world.Snapshot, playerPos *core.Position3D, p Palette) Frame {
	now := s.Taken
	f := Frame{
		Taken: now,
		Theme: p.Name,
		Identity: IdentityRow{
			PlayerName:  s.Identity.PlayerName,
			PlayerID:    s.Identity.PlayerID,
			GameVersion: s.Identity.GameVersion,
		},
		Counters:       s.Counters,
		Station:        s.Station,
		CurrentVehicle: s.CurrentVehicle,
		PlayerPosition: playerPos,
		Players:        []PlayerRow{},
		Markers:        []MarkerRow{},
		Pings:          pingRows(s, p),
		Vehicles:       vehicleRows(s),
		Zones:          zoneRows(s),
		Events:         make([]EventRow, 0, len(s.Events)),
	}
	if f.Station == "" {
		f.Station = core.Unknown
	}

	for _, e := range s.Entities {
		if e.Kind == core.KindPlayer {
			if !parser.IsValidPlayerName(e.Key) || s.Identity.IsSelf(e.Key) {
				continue
			}
			status := EntityStatus(e, now)
			f.Players = append(f.Players, PlayerRow{
				Name:     e.Key,
				Status:   status,
				Color:    p.StatusColor(status),
				Text:     PlayerText(e, now),
				LastSeen: e.LastSeen,
				Position: e.Position,
			})
			continue
		}
		if e.Position == nil {
			continue
		}
		if _, pinged := s.Pings[e.Key]; pinged {
			continue
		}
		f.Markers = append(f.Markers, MarkerRow{
			Key:      e.Key,
			Kind:     e.Kind,
			Color:    p.TagColor(core.TagTransit),
			Position: *e.Position,
		})
	}
	sort.SliceStable(f.Players, func(i, j int) bool { return f.Players[i].LastSeen.After(f.Players[j].LastSeen) })

	for _, e := range s.Events {
		f.Events = append(f.Events, EventRow{
			Time:    e.Time.Format("15:04:05"),
			Kind:    e.Kind,
			Color:   p.EventColor(e.Kind),
			Message: e.Message,
		})
	}
	return f
}

func pingRows(s world.Snapshot, p Palette) []PingRow {
	keys := make([]string, 0, len(s.Pings))
	for k := range s.Pings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := []PingRow{}
	for _, key := range keys {
		list := s.Pings[key]
		for i, ping := range list {
			age := s.Taken.Sub(ping.TS)
			lifetime := world.PingLifetime(ping.Tag)
			color := ColorForAge(age, lifetime, ping.Tag, p)
			labelColor := color
			if ping.PlayerName != "" {
				labelColor = p.Player
			}
			remaining := (lifetime - age).Seconds()
			if remaining < 0 {
				remaining = 0
			}
			rows = append(rows, PingRow{
				Key:        key,
				Label:      PingLabel(key, ping, age),
				Tag:        ping.Tag,
				Action:     ping.Action,
				Color:      color,
				LabelColor: labelColor,
				Age:        age.Seconds(),
				Remaining:  remaining,
				Fresh:      ping.Fresh,
				Newest:     i == len(list)-1,
				Overlay:    ping.Overlay,
				Anchor:     ping.OverlayAnchor,
				Position:   ping.Position,
			})
		}
	}
	return rows
}

// PingLabel is the text drawn next to a ping, e.g.
// "Bob_7 | Habs Transit | FINISH | (4s ago)".
func PingLabel(key string, ping core.Ping, age time.Duration) string {
	var b strings.Builder
	if ping.PlayerName != "" {
		b.WriteString(ping.PlayerName + " | ")
	}
	if ping.VictimName != "" {
		b.WriteString(ping.VictimName + " | ")
	}
	if ping.VehicleName != "" {
		b.WriteString(util.ShortName(ping.VehicleName) + " | ")
	}
	if ping.Attacker != "" {
		b.WriteString("by " + ping.Attacker + " | ")
	}
	name := strings.TrimSpace(managerPrefixRe.ReplaceAllString(key, ""))
	if len(name) > maxPingLabel {
		name = name[:maxPingLabel-3] + "..."
	}
	fmt.Fprintf(&b, "%s | %s | (%ds ago)", name, ping.Action, int(age.Seconds()))
	return b.String()
}

func vehicleRows(s world.Snapshot) []VehicleRow {
	rows := []VehicleRow{}
	if pv := s.Pending; pv != nil {
		status := "POTENTIAL"
		if pv.Confirmed {
			status = "CONFIRMED"
		}
		rows = append(rows, VehicleRow{
			Name: pv.Name,
			Text: fmt.Sprintf("Vehicle? - %s - %ds ago", status, int(s.Taken.Sub(pv.TS).Seconds())),
		})
	}

	vehicles := append([]core.Vehicle(nil), s.Vehicles...)
	sort.SliceStable(vehicles, func(i, j int) bool { return vehicles[i].LastUpdate.After(vehicles[j].LastUpdate) })
	for _, v := range vehicles {
		text := util.ShortName(v.Name) + " - " + v.State.String()
		if n := len(v.History); n > 0 {
			if a := v.History[n-1].Attacker; a != "" && a != "unknown" {
				text += " (by " + a + ")"
			}
		}
		text += fmt.Sprintf(" - %ds ago", int(s.Taken.Sub(v.LastUpdate).Seconds()))
		rows = append(rows, VehicleRow{ID: v.ID, Name: v.Name, State: v.State, Text: text})
	}
	return rows
}

func zoneRows(s world.Snapshot) []ZoneRow {
	n := len(s.ZoneMentions)
	if n > TopZones {
		n = TopZones
	}
	rows := make([]ZoneRow, 0, n)
	for _, z := range s.ZoneMentions[:n] {
		rows = append(rows, ZoneRow{Zone: z.Zone, Source: z.Source, Age: s.Taken.Sub(z.TS).Seconds()})
	}
	return rows
}
