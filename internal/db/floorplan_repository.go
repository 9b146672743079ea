package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/wayfinder/internal/model"
)

// ErrNoFloorPlan is returned by Load when nothing has been imported yet.
var ErrNoFloorPlan = errors.New("no floor plan stored")

// FloorPlanRepository stores a single floor plan (floors, POIs, walls).
type FloorPlanRepository struct {
	pool *pgxpool.Pool
}

// NewFloorPlanRepository creates a repository on top of pool.
func NewFloorPlanRepository(pool *pgxpool.Pool) *FloorPlanRepository {
	return &FloorPlanRepository{pool: pool}
}

// Save replaces the stored floor plan with m in one transaction.
func (r *FloorPlanRepository) Save(ctx context.Context, m *model.MapData) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("saving floor plan: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `TRUNCATE map_meta, walls, pois, floors`); err != nil {
		return fmt.Errorf("clearing floor plan: %w", err)
	}

	fingerprint, err := m.Fingerprint()
	if err != nil {
		return fmt.Errorf("saving floor plan: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO map_meta (id, width, height, grid_resolution, fingerprint) VALUES (1, $1, $2, $3, $4)`,
		m.Width, m.Height, m.GridResolution, fingerprint,
	); err != nil {
		return fmt.Errorf("inserting map meta: %w", err)
	}

	var floorRows, poiRows, wallRows [][]any
	for fi, f := range m.Floors {
		floorRows = append(floorRows, []any{f.ID, f.Name, f.Level, fi})
		for pi, p := range f.POIs {
			poiRows = append(poiRows, []any{p.ID, f.ID, p.Name, string(p.Type), p.Position.X, p.Position.Y, pi})
		}
		for wi, w := range f.Walls {
			wallRows = append(wallRows, []any{f.ID, wi, w.Start.X, w.Start.Y, w.End.X, w.End.Y})
		}
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"floors", []string{"id", "name", "level", "position"}, floorRows},
		{"pois", []string{"id", "floor_id", "name", "type", "x", "y", "position"}, poiRows},
		{"walls", []string{"floor_id", "seq", "x1", "y1", "x2", "y2"}, wallRows},
	}
	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("inserting %s: %w", c.table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("floor plan saved",
		"floors", len(floorRows),
		"pois", len(poiRows),
		"walls", len(wallRows),
		"fingerprint", fingerprint[:12])
	return nil
}

// Load reads the stored floor plan. Returns ErrNoFloorPlan if none was saved.
func (r *FloorPlanRepository) Load(ctx context.Context) (*model.MapData, error) {
	var m model.MapData
	err := r.pool.QueryRow(ctx,
		`SELECT width, height, grid_resolution FROM map_meta WHERE id = 1`,
	).Scan(&m.Width, &m.Height, &m.GridResolution)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoFloorPlan
	}
	if err != nil {
		return nil, fmt.Errorf("querying map meta: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name, level FROM floors ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying floors: %w", err)
	}
	m.Floors, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Floor, error) {
		var f model.Floor
		err := row.Scan(&f.ID, &f.Name, &f.Level)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning floors: %w", err)
	}

	byID := make(map[string]*model.Floor, len(m.Floors))
	for i := range m.Floors {
		byID[m.Floors[i].ID] = &m.Floors[i]
	}

	if err := r.loadPOIs(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.loadWalls(ctx, byID); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("stored floor plan: %w", err)
	}
	return &m, nil
}

// Fingerprint returns the fingerprint recorded by the last Save.
func (r *FloorPlanRepository) Fingerprint(ctx context.Context) (string, error) {
	var fp string
	err := r.pool.QueryRow(ctx, `SELECT fingerprint FROM map_meta WHERE id = 1`).Scan(&fp)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoFloorPlan
	}
	if err != nil {
		return "", fmt.Errorf("querying fingerprint: %w", err)
	}
	return fp, nil
}

func (r *FloorPlanRepository) loadPOIs(ctx context.Context, floors map[string]*model.Floor) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, floor_id, name, type, x, y FROM pois ORDER BY floor_id, position`)
	if err != nil {
		return fmt.Errorf("querying pois: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.POI
		var typ string
		if err := rows.Scan(&p.ID, &p.FloorID, &p.Name, &typ, &p.Position.X, &p.Position.Y); err != nil {
			return fmt.Errorf("scanning poi row: %w", err)
		}
		p.Type = model.POIType(typ)
		p.Position.FloorID = p.FloorID

		f := floors[p.FloorID]
		f.POIs = append(f.POIs, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating poi rows: %w", err)
	}
	return nil
}

func (r *FloorPlanRepository) loadWalls(ctx context.Context, floors map[string]*model.Floor) error {
	rows, err := r.pool.Query(ctx,
		`SELECT floor_id, x1, y1, x2, y2 FROM walls ORDER BY floor_id, seq`)
	if err != nil {
		return fmt.Errorf("querying walls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w model.Wall
		if err := rows.Scan(&w.FloorID, &w.Start.X, &w.Start.Y, &w.End.X, &w.End.Y); err != nil {
			return fmt.Errorf("scanning wall row: %w", err)
		}

		f := floors[w.FloorID]
		f.Walls = append(f.Walls, w)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating wall rows: %w", err)
	}
	return nil
}
