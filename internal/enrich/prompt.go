package enrich

import (
	"fmt"
	"os"
	"strings"
)

const notesPlaceholder = "{raw_notes}"

// LoadPrompt reads the prompt template from disk.
func LoadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to load prompt template: %w", err)
	}
	return string(data), nil
}

// RenderPrompt substitutes the player's raw notes into the template.
func RenderPrompt(template, rawNotes string) string {
	return strings.ReplaceAll(template, notesPlaceholder, rawNotes)
}
