package geo

import (
	"sort"
	"strings"
)

// Rank orders candidates against query in two phases.
//
// Exact phase: a candidate whose normalised form contains the normalised
// query as a whole token is an exact hit.  Every exact hit is included, in
// first-seen order, even when the hits alone exceed limit.  A user who types
// "Obio" should see both "Obio/Akpor" and "Obio East" rather than an
// arbitrary truncation.
//
// Fuzzy phase: the remaining candidates are ordered by edit distance between
// the normalised forms, ascending, with ties keeping first-seen order.  The
// first max(0, limit-len(exact)) of them are appended.
//
// An empty query produces no exact hits; the whole universe competes on
// distance.  The result contains no duplicates as long as candidates has none.
func Rank(query string, candidates []string, limit int) []string {
	nq := Normalize(query)

	result := make([]string, 0, limit)
	type scored struct {
		value string
		dist  int
	}
	rest := make([]scored, 0, len(candidates))

	for _, cand := range candidates {
		if hasToken(Normalize(cand), nq) {
			result = append(result, cand)
			continue
		}
		rest = append(rest, scored{value: cand, dist: Levenshtein(nq, Normalize(cand))})
	}

	budget := limit - len(result)
	if budget <= 0 {
		return result
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].dist < rest[j].dist
	})

	if budget > len(rest) {
		budget = len(rest)
	}
	for _, s := range rest[:budget] {
		result = append(result, s.value)
	}
	return result
}

// hasToken reports whether token equals one of the whitespace-separated
// tokens of s.  An empty token never matches because strings.Fields yields
// no empty elements.
func hasToken(s, token string) bool {
	for _, t := range strings.Fields(s) {
		if t == token {
			return true
		}
	}
	return false
}
