// Package geo provides place-name canonicalisation and fuzzy candidate
// ranking for Nigerian administrative areas.  Normalisation defines the
// canonical comparison space; Rank orders a candidate universe against a
// user-typed query.
package geo

import "strings"

// normalizeReplacer rewrites separator punctuation to spaces and removes
// decorative characters.  Hyphens and slashes are the common separators in
// LGA spellings ("Aiyedade/Ayedaade", "Ife-North"); apostrophes and
// parentheses carry no distinguishing information.
var normalizeReplacer = strings.NewReplacer(
	"-", " ",
	"/", " ",
	"'", "",
	"(", "",
	")", "",
)

// Normalize maps a place name into the canonical comparison space:
// separators become single spaces, decorations are dropped, and the result
// is lowercased.  It is idempotent, so already-normalised text passes
// through unchanged.  Surrounding whitespace is preserved.
func Normalize(s string) string {
	return strings.ToLower(normalizeReplacer.Replace(s))
}
