// Package slug derives URL-safe identifiers from display text.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases s, turns each run of whitespace into a single hyphen,
// drops every character outside [a-z0-9-], collapses repeated hyphens and
// trims hyphens from both ends. The result may be empty.
//
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return strings.Trim(collapseHyphens(b.String()), "-")
}

func collapseHyphens(s string) string {
	if !strings.Contains(s, "--") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(0)
	for _, r := range s {
		if r == '-' && prev == '-' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
