// Package dataset loads the area and clinic reference data the service
// resolves against.  Two interchangeable sources exist: a CSV source for the
// bundled files and a Postgres source for managed deployments.  A source
// failure degrades the service instead of aborting startup; callers receive
// an empty table with Degraded set and answer accordingly.
package dataset

import (
	"context"
	"strings"

	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
)

// Area is one Local Government Area row.
type Area struct {
	Name  string
	State string
}

// AreaTable is the loaded candidate universe for entity resolution.
type AreaTable struct {
	Areas []Area
	// Degraded is true when the source failed or produced no rows.  Degraded
	// answers are distinct from "no match": the resolver reports the flag so
	// callers can tell an empty universe from a miss.
	Degraded bool
}

// Names returns the area names in load order with duplicates removed,
// first occurrence winning.
func (t AreaTable) Names() []string {
	seen := make(map[string]struct{}, len(t.Areas))
	out := make([]string, 0, len(t.Areas))
	for _, a := range t.Areas {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ClinicTable is the loaded clinic directory input.
type ClinicTable struct {
	Records  []clinic.Record
	Degraded bool
}

// Source provides the reference tables.  Implementations return an error for
// infrastructure failures; Load converts that into a degraded table.
type Source interface {
	LoadAreas(ctx context.Context) (AreaTable, error)
	LoadClinics(ctx context.Context) (ClinicTable, error)
}

// Load fetches both tables from src, mapping any failure to an empty
// degraded table.  Reference data being unavailable is an operational
// problem, not a startup-fatal one: the service still answers conversations.
func Load(ctx context.Context, src Source, logger logging.Logger) (AreaTable, ClinicTable) {
	areas, err := src.LoadAreas(ctx)
	if err != nil {
		logger.Error("area dataset unavailable, resolution will report degraded data", logging.Err(err))
		areas = AreaTable{Degraded: true}
	}
	clinics, err := src.LoadClinics(ctx)
	if err != nil {
		logger.Error("clinic dataset unavailable, lookups will report degraded data", logging.Err(err))
		clinics = ClinicTable{Degraded: true}
	}
	return areas, clinics
}
