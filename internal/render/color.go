// Package render turns a world snapshot into a display frame.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yertz/yapr/internal/world"
	"github.com/yertz/yapr/pkg/core"
)

const (
	flashColor = "#ffffff"
	midGrey    = "#808080"
	endGrey    = "#505050"
)

// Palette holds the display colours of one theme.
type Palette struct {
	Name      string
	Tags      map[core.Tag]string
	Player    string
	Alive     string
	Dead      string
	Incap     string
	Faded     string
	Stale     string
	Events    map[core.EventKind]string
	EventText string
}

// DarkPalette is the default theme.
var DarkPalette = Palette{
	Name: "dark",
	Tags: map[core.Tag]string{
		core.TagTransit:          "#6ff0ff",
		core.TagExit:             "#6ff0ff",
		core.TagDungeon:          "#ff7bff",
		core.TagNPCKill:          "#ffa500",
		core.TagPlayerKill:       "#ff4500",
		core.TagVehicle:          "#00ff00",
		core.TagVehiclePotential: "#ff0000",
		core.TagVehicleConfirmed: "#ffff00",
	},
	Player: "#ffd86b",
	Alive:  "#00ff00",
	Dead:   "#ff0000",
	Incap:  "#ffa500",
	Faded:  "#90ee90",
	Stale:  "#a9a9a9",
	Events: map[core.EventKind]string{
		core.EventInfo:       "#d9e6ef",
		core.EventYou:        "#7dff9e",
		core.EventPlayer:     "#ffd86b",
		core.EventDeath:      "#ff0000",
		core.EventTransit:    "#6ff0ff",
		core.EventDungeon:    "#ff7bff",
		core.EventNPCKill:    "#ffa500",
		core.EventPlayerKill: "#ff4500",
		core.EventVehicle:    "#00ff00",
		core.EventError:      "#ff0000",
	},
	EventText: "#e6eef6",
}

// LightPalette is the light theme.
var LightPalette = Palette{
	Name: "light",
	Tags: map[core.Tag]string{
		core.TagTransit:          "#00bfff",
		core.TagExit:             "#00bfff",
		core.TagDungeon:          "#c71585",
		core.TagNPCKill:          "#ff8c00",
		core.TagPlayerKill:       "#d2691e",
		core.TagVehicle:          "#006400",
		core.TagVehiclePotential: "#cc0000",
		core.TagVehicleConfirmed: "#cccc00",
	},
	Player: "#b8860b",
	Alive:  "#008000",
	Dead:   "#ff0000",
	Incap:  "#ff8c00",
	Faded:  "#90ee90",
	Stale:  "#a9a9a9",
	Events: map[core.EventKind]string{
		core.EventInfo:       "#4b4b4b",
		core.EventYou:        "#008000",
		core.EventPlayer:     "#b8860b",
		core.EventDeath:      "#ff0000",
		core.EventTransit:    "#00bfff",
		core.EventDungeon:    "#c71585",
		core.EventNPCKill:    "#ff8c00",
		core.EventPlayerKill: "#d2691e",
		core.EventVehicle:    "#006400",
		core.EventError:      "#ff0000",
	},
	EventText: "#000000",
}

// PaletteByName returns the named theme, falling back to DarkPalette.
func PaletteByName(name string) Palette {
	if name == LightPalette.Name {
		return LightPalette
	}
	return DarkPalette
}

// TagColor returns the base colour for tag. Unknown tags use the transit colour.
func (p Palette) TagColor(tag core.Tag) string {
	if c, ok := p.Tags[tag]; ok {
		return c
	}
	return p.Tags[core.TagTransit]
}

// EventColor returns the colour for an event log entry.
func (p Palette) EventColor(kind core.EventKind) string {
	if c, ok := p.Events[kind]; ok {
		return c
	}
	return p.EventText
}

// ColorForAge returns the colour of a ping of the given age. Pings inside
// the flash window are white. After that the tag colour fades to mid grey
// over the first half of the lifetime and to dark grey over the second.
func ColorForAge(age, lifetime time.Duration, tag core.Tag, p Palette) string {
	if age <= world.FlashWindow {
		return flashColor
	}
	base := p.TagColor(tag)
	if lifetime <= 0 {
		return endGrey
	}

	alpha := 1 - age.Seconds()/lifetime.Seconds()
	if alpha < 0 {
		alpha = 0
	}
	if alpha >= 0.5 {
		blend := (1 - alpha) / 0.5
		return Interpolate(base, midGrey, blend*0.5)
	}
	blend := (0.5 - alpha) / 0.5
	return Interpolate(Interpolate(base, midGrey, 0.5), endGrey, blend)
}

// Interpolate mixes two #rrggbb colours. Channels are truncated toward zero.
// Malformed input returns from unchanged.
func Interpolate(from, to string, ratio float64) string {
	a, ok1 := parseHex(from)
	b, ok2 := parseHex(to)
	if !ok1 || !ok2 {
		return from
	}
	var out [3]int
	for i := range out {
		out[i] = int(float64(a[i]) + float64(b[i]-a[i])*ratio)
	}
	return fmt.Sprintf("#%02x%02x%02x", out[0], out[1], out[2])
}

func parseHex(s string) ([3]int, bool) {
	var rgb [3]int
	if len(s) != 7 || s[0] != '#' {
		return rgb, false
	}
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return rgb, false
		}
		rgb[i] = int(v)
	}
	return rgb, true
}
