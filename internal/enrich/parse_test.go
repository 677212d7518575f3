package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	text := strings.Join([]string{
		"TAGS: calling station, passive, loose",
		"",
		"SUMMARY:",
		"- Limps most buttons and overcalls rivers.",
		"- Rarely raises without the nuts.",
		"EXPLOIT STRATEGY:",
		"- Value bet thin on every street.",
		"- Never bluff the river.",
	}, "\n")

	notes := Parse(text)

	assert.Equal(t, []string{"calling station", "passive", "loose"}, notes.Tags)
	assert.Equal(t, []string{
		"Limps most buttons and overcalls rivers.",
		"Rarely raises without the nuts.",
	}, notes.Summary)
	assert.Equal(t, []string{
		"Value bet thin on every street.",
		"Never bluff the river.",
	}, notes.ExploitStrategy)
	assert.True(t, notes.Complete())
}

func TestParseIgnoresStrayLines(t *testing.T) {
	text := strings.Join([]string{
		"Here is the profile you asked for:",
		"- an orphan bullet before any section",
		"SUMMARY:",
		"- Plays fit or fold postflop.",
		"Some commentary in between.",
		"EXPLOIT STRATEGY:",
		"- Cbet every flop.",
	}, "\n")

	notes := Parse(text)

	assert.Empty(t, notes.Tags)
	assert.Equal(t, []string{"Plays fit or fold postflop."}, notes.Summary)
	assert.Equal(t, []string{"Cbet every flop."}, notes.ExploitStrategy)
}

func TestParseIncomplete(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty response", ""},
		{"tags only", "TAGS: aggro"},
		{"missing exploit section", "SUMMARY:\n- Tight preflop."},
		{"headers without bullets", "SUMMARY:\nEXPLOIT STRATEGY:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Parse(tt.text).Complete())
		})
	}
}

func TestParseEmptyTagsDropped(t *testing.T) {
	notes := Parse("TAGS: , aggro, ,")
	assert.Equal(t, []string{"aggro"}, notes.Tags)
}

func TestRenderPrompt(t *testing.T) {
	got := RenderPrompt("Notes:\n{raw_notes}\nGo.", "calls too much")
	assert.Equal(t, "Notes:\ncalls too much\nGo.", got)
}
