package clinic

import (
	"fmt"
	"sort"
	"strings"
)

// Directory is an immutable clinic collection.  Lookups are case-insensitive
// exact matches; an empty lookup result is a valid answer, not an error.
type Directory struct {
	records []Record
	loaded  bool
}

// NewDirectory builds a Directory from records, dropping entries that are not
// Valid.  loaded distinguishes "the source produced data" from "the source
// failed or was empty"; callers surface the latter as a degraded response
// rather than conflating it with an empty match.
func NewDirectory(records []Record, loaded bool) *Directory {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			kept = append(kept, r)
		}
	}
	return &Directory{records: kept, loaded: loaded}
}

// Loaded reports whether the backing dataset was available at startup.
func (d *Directory) Loaded() bool {
	return d.loaded
}

// Len returns the number of records in the directory.
func (d *Directory) Len() int {
	return len(d.records)
}

// FindClinics returns every record whose area and locality both match the
// arguments case-insensitively.  Records keep their load order.
func (d *Directory) FindClinics(area, locality string) []Record {
	out := make([]Record, 0, 4)
	for _, r := range d.records {
		if strings.EqualFold(r.Area, area) && strings.EqualFold(r.Locality, locality) {
			out = append(out, r)
		}
	}
	return out
}

// Localities returns the distinct localities for the given area, matched
// case-insensitively, sorted ascending.  Blank locality values are skipped.
func (d *Directory) Localities(area string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, r := range d.records {
		if !strings.EqualFold(r.Area, area) {
			continue
		}
		loc := r.Locality
		if strings.TrimSpace(loc) == "" {
			continue
		}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// ReferralText renders records as the user-facing referral message.  Each
// clinic contributes a name line and an address line; the landmark line is
// included only when the record has one.
func ReferralText(records []Record) string {
	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "📓 Clinic Name: %s\n", r.Name)
		fmt.Fprintf(&sb, "📍 Address: %s, %s, %s", r.Area, r.Locality, r.Address)
		if strings.TrimSpace(r.Landmark) != "" {
			fmt.Fprintf(&sb, "\n✨ Popular Landmark: %s\n\n", r.Landmark)
		} else {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// NumberedList renders items as "0: first\n1: second\n", the plain-text shape
// messenger surfaces expect for tappable option lists.
func NumberedList(items []string) string {
	var sb strings.Builder
	for i, v := range items {
		fmt.Fprintf(&sb, "%d: %s\n", i, v)
	}
	return sb.String()
}
