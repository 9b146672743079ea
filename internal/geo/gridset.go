package geo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wayfinder/internal/model"
)

// GridSet holds one WalkableGrid per floor id.
type GridSet map[string]*WalkableGrid

// BuildGrids rasterizes every floor of m concurrently. Floors are independent,
// so each one gets its own goroutine; ctx cancels floors not yet started.
func BuildGrids(ctx context.Context, m *model.MapData) (GridSet, error) {
	grids := make([]*WalkableGrid, len(m.Floors))

	g, gctx := errgroup.WithContext(ctx)
	for i := range m.Floors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("rasterizing floor %q: %w", m.Floors[i].ID, err)
			}
			grids[i] = Rasterize(&m.Floors[i], m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(GridSet, len(grids))
	for _, grid := range grids {
		set[grid.FloorID] = grid
	}
	return set, nil
}
