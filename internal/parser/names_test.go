package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPlayerName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain handle", "Alice_01", true},
		{"short underscore suffix", "Snew_J", true},
		{"digits in last part", "Death_Toll007", true},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"blacklisted", "Elevator", false},
		{"blacklisted lower", "npc kill", false},
		{"team prefix", "Team_GameServices_x", false},
		{"srv prefix", "SRV_node", false},
		{"ui entity", "my_ui_entity", false},
		{"civilian pilot", "Human-Civilian-Pilot-3", false},
		{"all digits", "1234567", false},
		{"too short", "ab", false},
		{"slash", "a/b/c", false},
		{"colon", "tcp:thing", false},
		{"npc id suffix", "pu_human_enemy_6392618593887", false},
		{"two parts with long number", "Alice_6392618593887", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPlayerName(tt.input))
		})
	}
}

func TestIsNPCName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"PU_Human_Enemy_GroundCombat_NPC_Grunt_1234567890", true},
		{"Contestedzones_Guard", true},
		{"some_bot_x", true},
		{"Alice_6392618593887", true},
		{"Alice_01", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNPCName(tt.input))
		})
	}
}

func TestNPCDisplayName(t *testing.T) {
	assert.Equal(t, "Grunt", NPCDisplayName("PU_Human_Enemy_GroundCombat_NPC_Grunt_1234567890"))
	assert.Equal(t, "Npc", NPCDisplayName("NPC_1"))
	assert.Equal(t, "NPC", NPCDisplayName("guard"))
}
