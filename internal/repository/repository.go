package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/helios/internal/buildings"
	"github.com/jackc/pgx/v5"
)

// Database is the subset of a pgx pool the repository relies on.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchBuildings(ctx context.Context) ([]buildings.Record, error)
	LoadDataset(ctx context.Context) (*buildings.Dataset, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
