package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS weather_lookups (
		id                  UUID PRIMARY KEY,
		city                TEXT NOT NULL,
		temperature_celsius DOUBLE PRECISION NOT NULL,
		feels_like_celsius  DOUBLE PRECISION NOT NULL,
		humidity_percent    INTEGER NOT NULL,
		pressure_hpa        INTEGER NOT NULL,
		description         TEXT NOT NULL,
		status_code         INTEGER NOT NULL,
		fetched_at          TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS weather_lookups_city_fetched_at
		ON weather_lookups (LOWER(city), fetched_at DESC);
`

// PostgresRepository implements domain.LookupRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the lookup table and index if they do not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// SaveLookup persists a lookup to PostgreSQL
func (r *PostgresRepository) SaveLookup(ctx context.Context, lookup domain.Lookup) error {
	query := `
		INSERT INTO weather_lookups (
			id, city, temperature_celsius, feels_like_celsius, humidity_percent,
			pressure_hpa, description, status_code, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	rec := lookup.Record
	_, err := r.pool.Exec(ctx, query,
		lookup.ID, rec.CityName, rec.TemperatureCelsius, rec.FeelsLikeCelsius, rec.HumidityPercent,
		rec.PressureHPa, rec.PrimaryDescription, rec.StatusCode, lookup.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save lookup: %w", err)
	}

	return nil
}

// RecentLookups retrieves lookup history from PostgreSQL, newest first
func (r *PostgresRepository) RecentLookups(ctx context.Context, city string, limit int) ([]domain.Lookup, error) {
	query := `
		SELECT id, city, temperature_celsius, feels_like_celsius, humidity_percent,
			   pressure_hpa, description, status_code, fetched_at
		FROM weather_lookups
		WHERE ($1::text = '' OR LOWER(city) = LOWER($1::text))
		ORDER BY fetched_at DESC
		LIMIT $2
	`

	// LIMIT NULL returns every row
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.pool.Query(ctx, query, city, limitArg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query lookups: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Lookup, 0, max(limit, 0))
	for rows.Next() {
		var l domain.Lookup
		rec := &l.Record
		err := rows.Scan(
			&l.ID, &rec.CityName, &rec.TemperatureCelsius, &rec.FeelsLikeCelsius, &rec.HumidityPercent,
			&rec.PressureHPa, &rec.PrimaryDescription, &rec.StatusCode, &l.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lookup row: %w", err)
		}
		// only valid records are ever stored
		rec.IsValid = true
		l.FetchedAt = l.FetchedAt.UTC()
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read lookups: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
