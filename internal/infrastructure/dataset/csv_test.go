package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCSVSource() *CSVSource {
	return NewCSVSource(
		filepath.Join("testdata", "areas.csv"),
		filepath.Join("testdata", "clinics.csv"),
	)
}

func TestCSVSource_LoadAreas(t *testing.T) {
	table, err := testCSVSource().LoadAreas(context.Background())
	require.NoError(t, err)

	assert.False(t, table.Degraded)
	// Header skipped, blank name dropped; the duplicate row survives here and
	// is removed by Names().
	assert.Len(t, table.Areas, 5)
	assert.Equal(t, Area{Name: "Ikeja", State: "Lagos"}, table.Areas[0])
	assert.Equal(t, "Obio/Akpor", table.Areas[1].Name)
	assert.Equal(t, "Ikeja", table.Areas[3].Name)
	assert.Equal(t, "Eti Osa", table.Areas[4].Name)
}

func TestCSVSource_LoadClinics(t *testing.T) {
	table, err := testCSVSource().LoadClinics(context.Background())
	require.NoError(t, err)

	assert.False(t, table.Degraded)
	assert.Len(t, table.Records, 4)

	// Ragged row without a landmark column still loads.
	assert.Equal(t, "Heartland Clinic", table.Records[2].Name)
	assert.Empty(t, table.Records[2].Landmark)
}

func TestCSVSource_MissingFileIsDegraded(t *testing.T) {
	src := NewCSVSource(
		filepath.Join("testdata", "no_such_areas.csv"),
		filepath.Join("testdata", "no_such_clinics.csv"),
	)

	areas, err := src.LoadAreas(context.Background())
	assert.Error(t, err)
	assert.True(t, areas.Degraded)

	clinics, err := src.LoadClinics(context.Background())
	assert.Error(t, err)
	assert.True(t, clinics.Degraded)
}
