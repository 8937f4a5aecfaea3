// Package sanitize cleans free text typed at the kiosk before it is stored.
// This is part of the platform layer and contains no business logic.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)

	entities = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Text strips markup and collapses runs of whitespace. Tags hidden behind
// entities are stripped as well.
func Text(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = tagPattern.ReplaceAllString(entities.Replace(out), "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(out, " "))
}

// Multiline is Text for notes where line breaks matter. Spaces are collapsed
// within each line and blank lines are dropped.
func Multiline(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if cleaned := Text(line); cleaned != "" {
			kept = append(kept, cleaned)
		}
	}
	return strings.Join(kept, "\n")
}
