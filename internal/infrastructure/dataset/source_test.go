package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
)

type stubSource struct {
	areas      AreaTable
	areasErr   error
	clinics    ClinicTable
	clinicsErr error
}

func (s stubSource) LoadAreas(context.Context) (AreaTable, error) {
	return s.areas, s.areasErr
}

func (s stubSource) LoadClinics(context.Context) (ClinicTable, error) {
	return s.clinics, s.clinicsErr
}

func TestAreaTable_Names_DedupesPreservingFirstSeen(t *testing.T) {
	table := AreaTable{Areas: []Area{
		{Name: "Ikeja"},
		{Name: "Epe"},
		{Name: "Ikeja"},
		{Name: "  "},
		{Name: "Badagry"},
	}}

	assert.Equal(t, []string{"Ikeja", "Epe", "Badagry"}, table.Names())
}

func TestLoad_SourceErrorsBecomeDegradedTables(t *testing.T) {
	src := stubSource{
		areasErr:   errors.New("connection refused"),
		clinicsErr: errors.New("connection refused"),
	}

	areas, clinics := Load(context.Background(), src, logging.NewNopLogger())

	assert.True(t, areas.Degraded)
	assert.Empty(t, areas.Areas)
	assert.True(t, clinics.Degraded)
	assert.Empty(t, clinics.Records)
}

func TestLoad_HealthySourcePassesThrough(t *testing.T) {
	src := stubSource{
		areas:   AreaTable{Areas: []Area{{Name: "Ikeja", State: "Lagos"}}},
		clinics: ClinicTable{Records: []clinic.Record{{Area: "Ikeja", Locality: "Ogba", Name: "Hub"}}},
	}

	areas, clinics := Load(context.Background(), src, logging.NewNopLogger())

	assert.False(t, areas.Degraded)
	assert.Len(t, areas.Areas, 1)
	assert.False(t, clinics.Degraded)
	assert.Len(t, clinics.Records, 1)
}

func TestLoad_PartialFailure(t *testing.T) {
	src := stubSource{
		areas:      AreaTable{Areas: []Area{{Name: "Ikeja"}}},
		clinicsErr: errors.New("table missing"),
	}

	areas, clinics := Load(context.Background(), src, logging.NewNopLogger())

	assert.False(t, areas.Degraded)
	assert.True(t, clinics.Degraded)
}
