package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/UnknownOlympus/helios/internal/buildings"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a pgx connection pool and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}).String()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// FetchBuildings retrieves every building footprint with known coordinates.
// Missing heights and areas are read as zero; a missing sea-level height falls
// back to the roof height above grade.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
//
// Returns:
// - A slice of buildings.Record in table order.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchBuildings(ctx context.Context) ([]buildings.Record, error) {
	var records []buildings.Record
	query := `
		SELECT
			latitude,
			longitude,
			COALESCE(max_height, 0),
			COALESCE(height_msl, max_height, 0),
			COALESCE(shape_area, 0)
		FROM public.buildings
		WHERE
			latitude IS NOT NULL
			AND longitude IS NOT NULL;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec buildings.Record
		if errScan := rows.Scan(
			&rec.Latitude, &rec.Longitude, &rec.MaxHeight, &rec.HeightMSL, &rec.Area,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan building: %w", errScan)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Buildings fetched from database", "count", len(records))

	return records, nil
}

// LoadDataset fetches all buildings and indexes them for nearby lookups.
func (r *Repository) LoadDataset(ctx context.Context) (*buildings.Dataset, error) {
	records, err := r.FetchBuildings(ctx)
	if err != nil {
		return nil, err
	}

	dataset := buildings.NewDataset(records)
	r.log.InfoContext(ctx, "Building dataset loaded from database", "buildings", dataset.Len())

	return dataset, nil
}
