package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "chatbot",
		Username: "honey",
		Password: "p@ss/word",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "/chatbot")
	assert.Contains(t, dsn, "sslmode=require")
	// Reserved characters in the password must be escaped.
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestPostgresConfig_DSN_Defaults(t *testing.T) {
	dsn := PostgresConfig{Database: "chatbot"}.DSN()

	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
}

// stubRows feeds canned rows through the pgxRows interface.
type stubRows struct {
	rows    [][]any
	idx     int
	scanErr error
	iterErr error
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.idx-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		if sp, ok := d.(*string); ok {
			sp2, _ := row[i].(string)
			*sp = sp2
		}
	}
	return nil
}

func (r *stubRows) Err() error { return r.iterErr }
func (r *stubRows) Close()     {}

type stubQuerier struct {
	rows *stubRows
	err  error
}

func (q stubQuerier) Query(context.Context, string, ...any) (pgxRows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSource_LoadAreas(t *testing.T) {
	src := &PostgresSource{q: stubQuerier{rows: &stubRows{rows: [][]any{
		{"Ikeja", "Lagos"},
		{"", "Lagos"},
		{"Epe", "Lagos"},
	}}}}

	table, err := src.LoadAreas(context.Background())
	require.NoError(t, err)

	assert.False(t, table.Degraded)
	require.Len(t, table.Areas, 2)
	assert.Equal(t, Area{Name: "Ikeja", State: "Lagos"}, table.Areas[0])
}

func TestPostgresSource_LoadAreas_QueryError(t *testing.T) {
	src := &PostgresSource{q: stubQuerier{err: errors.New("relation does not exist")}}

	table, err := src.LoadAreas(context.Background())

	assert.Error(t, err)
	assert.True(t, table.Degraded)
}

func TestPostgresSource_LoadAreas_EmptyResultIsDegraded(t *testing.T) {
	src := &PostgresSource{q: stubQuerier{rows: &stubRows{}}}

	table, err := src.LoadAreas(context.Background())
	require.NoError(t, err)

	assert.True(t, table.Degraded)
}

func TestPostgresSource_LoadClinics(t *testing.T) {
	src := &PostgresSource{q: stubQuerier{rows: &stubRows{rows: [][]any{
		{"Ikeja", "Ogba", "Wellness Hub", "1 Aguda Rd", "Excel Mall"},
		{"Ikeja", "", "No Locality", "x", ""},
	}}}}

	table, err := src.LoadClinics(context.Background())
	require.NoError(t, err)

	assert.False(t, table.Degraded)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Wellness Hub", table.Records[0].Name)
}

func TestPostgresSource_LoadClinics_IterError(t *testing.T) {
	src := &PostgresSource{q: stubQuerier{rows: &stubRows{iterErr: errors.New("broken pipe")}}}

	table, err := src.LoadClinics(context.Background())

	assert.Error(t, err)
	assert.True(t, table.Degraded)
}
