package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// CSVSource reads the reference tables from two CSV files.
//
// areas file:   lga,state
// clinics file: lga,town,clinic_name,address,landmark
//
// The first row is treated as a header and skipped.  Rows with a blank
// primary column are dropped; ragged rows are tolerated so a missing
// trailing landmark column does not fail the load.
type CSVSource struct {
	areasPath   string
	clinicsPath string
}

// NewCSVSource constructs a CSVSource over the given file paths.
func NewCSVSource(areasPath, clinicsPath string) *CSVSource {
	return &CSVSource{areasPath: areasPath, clinicsPath: clinicsPath}
}

// LoadAreas implements Source.
func (s *CSVSource) LoadAreas(_ context.Context) (AreaTable, error) {
	rows, err := readCSV(s.areasPath)
	if err != nil {
		return AreaTable{Degraded: true}, err
	}

	table := AreaTable{Areas: make([]Area, 0, len(rows))}
	for _, row := range rows {
		a := Area{Name: strings.TrimSpace(col(row, 0)), State: strings.TrimSpace(col(row, 1))}
		if a.Name == "" {
			continue
		}
		table.Areas = append(table.Areas, a)
	}
	if len(table.Areas) == 0 {
		table.Degraded = true
	}
	return table, nil
}

// LoadClinics implements Source.
func (s *CSVSource) LoadClinics(_ context.Context) (ClinicTable, error) {
	rows, err := readCSV(s.clinicsPath)
	if err != nil {
		return ClinicTable{Degraded: true}, err
	}

	table := ClinicTable{Records: make([]clinic.Record, 0, len(rows))}
	for _, row := range rows {
		r := clinic.Record{
			Area:     strings.TrimSpace(col(row, 0)),
			Locality: strings.TrimSpace(col(row, 1)),
			Name:     strings.TrimSpace(col(row, 2)),
			Address:  strings.TrimSpace(col(row, 3)),
			Landmark: strings.TrimSpace(col(row, 4)),
		}
		if !r.Valid() {
			continue
		}
		table.Records = append(table.Records, r)
	}
	if len(table.Records) == 0 {
		table.Degraded = true
	}
	return table, nil
}

// readCSV returns all data rows of the file at path, header excluded.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "open dataset file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatasetParseError, "parse dataset file").WithDetail(path)
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// col returns row[i] or "" when the row is too short.
func col(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
