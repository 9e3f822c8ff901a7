package faq

import (
	"strings"
	"unicode"
)

// normalizeQuestion lower-cases q, keeps letters and digits, and turns every
// run of whitespace or punctuation into a single space. Its output is the
// fingerprint input and the trending key.
func normalizeQuestion(q string) string {
	var builder strings.Builder
	builder.Grow(len(q))
	pendingSpace := false
	for _, r := range strings.ToLower(q) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && builder.Len() > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteRune(r)
			pendingSpace = false
			continue
		}
		pendingSpace = true
	}
	return builder.String()
}
