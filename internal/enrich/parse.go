// Package enrich implements the textual protocol spoken with the
// text-generation service: prompt templating on the way out, and the
// three-section TAGS / SUMMARY / EXPLOIT STRATEGY block on the way back.
package enrich

import "strings"

const (
	tagsPrefix    = "TAGS:"
	summaryHeader = "SUMMARY:"
	exploitHeader = "EXPLOIT STRATEGY:"
	bulletPrefix  = "- "
)

// ProfileNotes is the parsed enrichment for one player.
type ProfileNotes struct {
	Tags            []string
	Summary         []string
	ExploitStrategy []string
}

// Complete reports whether the response carried enough to be worth
// writing back. Tags alone are not enough.
func (p ProfileNotes) Complete() bool {
	return len(p.Summary) > 0 && len(p.ExploitStrategy) > 0
}

// Parse reads a three-section generation response. TAGS is a single
// comma-separated line; SUMMARY and EXPLOIT STRATEGY are headers
// followed by "- " bullet lines, order preserved. Anything else is
// ignored; a malformed response simply parses as incomplete.
func Parse(text string) ProfileNotes {
	var notes ProfileNotes
	section := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, tagsPrefix):
			for _, tag := range strings.Split(strings.TrimPrefix(line, tagsPrefix), ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					notes.Tags = append(notes.Tags, tag)
				}
			}
		case strings.HasPrefix(line, summaryHeader):
			section = "summary"
		case strings.HasPrefix(line, exploitHeader):
			section = "exploit"
		case strings.HasPrefix(line, bulletPrefix):
			bullet := strings.TrimSpace(strings.TrimPrefix(line, bulletPrefix))
			switch section {
			case "summary":
				notes.Summary = append(notes.Summary, bullet)
			case "exploit":
				notes.ExploitStrategy = append(notes.ExploitStrategy, bullet)
			}
		}
	}

	return notes
}
