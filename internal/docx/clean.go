// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips markup tags from s, collapses whitespace runs to single
// spaces, and trims the result. Cleaning an already-clean string is a
// no-op.
func Clean(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// containsMarker reports whether a serialized object subtree carries the
// equation marker. Case-sensitive by design.
func containsMarker(s string) bool {
	return strings.Contains(s, objectMarker)
}

// Dedupe trims each record, drops blanks, and removes duplicates while
// preserving first-occurrence order.
func Dedupe(records []string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
