package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/wanderday/daytrip/internal/types"
)

// Repository supplies the immutable POI catalog at startup.
type Repository interface {
	GetAll(ctx context.Context) ([]types.POI, error)
}

// FileRepository reads the catalog from a JSON file holding an array of
// {id, lat, lon, tags} records.
type FileRepository struct {
	path   string
	logger *slog.Logger
}

func NewFileRepository(path string, logger *slog.Logger) *FileRepository {
	return &FileRepository{path: path, logger: logger}
}

func (r *FileRepository) GetAll(ctx context.Context) ([]types.POI, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", r.path, err)
	}

	var pois []types.POI
	if err := json.Unmarshal(data, &pois); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", r.path, err)
	}

	r.logger.Info("Catalog file loaded", slog.String("path", r.path), slog.Int("pois", len(pois)))
	return pois, nil
}

// PGXQuerier is the slice of pgxpool.Pool the Postgres repository needs,
// satisfied by pgxmock in tests.
type PGXQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository reads the catalog from the pois table.
type PostgresRepository struct {
	db     PGXQuerier
	logger *slog.Logger
}

func NewPostgresRepository(db PGXQuerier, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]types.POI, error) {
	rows, err := r.db.Query(ctx, `SELECT id, lat, lon, tags FROM pois ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pois: %w", err)
	}
	defer rows.Close()

	var pois []types.POI
	for rows.Next() {
		var p types.POI
		if err := rows.Scan(&p.ID, &p.Lat, &p.Lon, &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan poi row: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading poi rows: %w", err)
	}

	r.logger.Info("Catalog loaded from database", slog.Int("pois", len(pois)))
	return pois, nil
}
