// Package clinic models the family-planning clinic directory: an immutable
// in-memory collection of clinic records keyed by administrative area and
// locality, built once at startup from a dataset source.
package clinic

import "strings"

// Record is a single clinic entry in the directory.
type Record struct {
	// Area is the Local Government Area the clinic belongs to.
	Area string `json:"area"`

	// Locality is the town or city within the area.
	Locality string `json:"locality"`

	// Name is the clinic's display name.
	Name string `json:"name"`

	// Address is the street address.
	Address string `json:"address"`

	// Landmark is a well-known nearby reference point; may be empty.
	Landmark string `json:"landmark,omitempty"`
}

// Valid reports whether the record carries the minimum fields required for a
// referral.  Rows missing area or locality cannot be matched and are skipped
// at load time.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.Area) != "" && strings.TrimSpace(r.Locality) != ""
}
