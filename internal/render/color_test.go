package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yertz/yapr/pkg/core"
)

func TestColorForAge(t *testing.T) {
	lifetime := 45 * time.Second

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"flash", 0, "#ffffff"},
		{"flash edge", 2500 * time.Millisecond, "#ffffff"},
		{"half life", 22500 * time.Millisecond, "#77b8bf"},
		{"expired", lifetime, "#505050"},
		{"past lifetime", 2 * lifetime, "#505050"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorForAge(tt.age, lifetime, core.TagTransit, DarkPalette))
		})
	}
}

func TestColorForAge_NoLifetime(t *testing.T) {
	assert.Equal(t, "#505050", ColorForAge(10*time.Second, 0, core.TagDungeon, DarkPalette))
}

func TestColorForAge_FadesMonotonically(t *testing.T) {
	lifetime := 120 * time.Second
	prev := 255 * 3
	for age := 3 * time.Second; age <= lifetime; age += 3 * time.Second {
		rgb, ok := parseHex(ColorForAge(age, lifetime, core.TagDungeon, DarkPalette))
		assert.True(t, ok)
		sum := rgb[0] + rgb[1] + rgb[2]
		assert.LessOrEqual(t, sum, prev, "age %s", age)
		prev = sum
	}
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, "#7f7f7f", Interpolate("#000000", "#ffffff", 0.5))
	assert.Equal(t, "#000000", Interpolate("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", Interpolate("#000000", "#ffffff", 1))
	assert.Equal(t, "nope", Interpolate("nope", "#ffffff", 0.5))
	assert.Equal(t, "#000000", Interpolate("#000000", "#zzzzzz", 0.5))
}

func TestPaletteByName(t *testing.T) {
	assert.Equal(t, "light", PaletteByName("light").Name)
	assert.Equal(t, "dark", PaletteByName("dark").Name)
	assert.Equal(t, "dark", PaletteByName("").Name)
}

func TestPalette_Fallbacks(t *testing.T) {
	p := DarkPalette
	assert.Equal(t, p.Tags[core.TagTransit], p.TagColor("mystery"))
	assert.Equal(t, "#ff7bff", p.TagColor(core.TagDungeon))
	assert.Equal(t, p.EventText, p.EventColor("mystery"))
	assert.Equal(t, "#7dff9e", p.EventColor(core.EventYou))
}
