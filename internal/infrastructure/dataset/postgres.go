package dataset

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// PostgresConfig holds the connection parameters for the Postgres-backed
// dataset source.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
}

// DSN renders the config as a postgres connection URL.  Credentials are
// URL-escaped so passwords with reserved characters survive.
func (c PostgresConfig) DSN() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// pgxQuerier is the subset of pgxpool.Pool the source uses, kept as an
// interface so tests can substitute a stub.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgxRows, error)
}

// pgxRows mirrors the subset of pgx.Rows the source consumes.
type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// poolQuerier adapts *pgxpool.Pool to pgxQuerier.
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgxRows, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PostgresSource loads the reference tables from a Postgres database.
// Expected schema:
//
//	areas(name text, state text)
//	clinics(area text, locality text, name text, address text, landmark text)
type PostgresSource struct {
	q      pgxQuerier
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPostgresSource connects a pool and verifies it with a ping.
func NewPostgresSource(ctx context.Context, cfg PostgresConfig, logger logging.Logger) (*PostgresSource, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "invalid postgres configuration")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "postgres ping failed")
	}

	logger.Info("dataset postgres source connected",
		logging.String("host", cfg.Host),
		logging.String("database", cfg.Database),
	)
	return &PostgresSource{q: poolQuerier{pool: pool}, pool: pool, logger: logger}, nil
}

// Close releases the underlying pool.
func (s *PostgresSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadAreas implements Source.
func (s *PostgresSource) LoadAreas(ctx context.Context) (AreaTable, error) {
	rows, err := s.q.Query(ctx, `SELECT name, COALESCE(state, '') FROM areas ORDER BY name`)
	if err != nil {
		return AreaTable{Degraded: true}, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "query areas")
	}
	defer rows.Close()

	var table AreaTable
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.Name, &a.State); err != nil {
			return AreaTable{Degraded: true}, errors.Wrap(err, errors.ErrCodeDatasetParseError, "scan area row")
		}
		if a.Name == "" {
			continue
		}
		table.Areas = append(table.Areas, a)
	}
	if err := rows.Err(); err != nil {
		return AreaTable{Degraded: true}, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "iterate area rows")
	}
	if len(table.Areas) == 0 {
		table.Degraded = true
	}
	return table, nil
}

// LoadClinics implements Source.
func (s *PostgresSource) LoadClinics(ctx context.Context) (ClinicTable, error) {
	rows, err := s.q.Query(ctx, `SELECT area, locality, name, COALESCE(address, ''), COALESCE(landmark, '') FROM clinics ORDER BY area, locality, name`)
	if err != nil {
		return ClinicTable{Degraded: true}, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "query clinics")
	}
	defer rows.Close()

	var table ClinicTable
	for rows.Next() {
		var r clinic.Record
		if err := rows.Scan(&r.Area, &r.Locality, &r.Name, &r.Address, &r.Landmark); err != nil {
			return ClinicTable{Degraded: true}, errors.Wrap(err, errors.ErrCodeDatasetParseError, "scan clinic row")
		}
		if !r.Valid() {
			continue
		}
		table.Records = append(table.Records, r)
	}
	if err := rows.Err(); err != nil {
		return ClinicTable{Degraded: true}, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "iterate clinic rows")
	}
	if len(table.Records) == 0 {
		table.Degraded = true
	}
	return table, nil
}
