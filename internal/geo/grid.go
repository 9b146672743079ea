package geo

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/udisondev/wayfinder/internal/model"
)

// WalkableGrid is the set of passable lattice points of one floor.
// Lattice points are multiples of Resolution; the grid covers the floor's
// padded extent only. Read-only after Rasterize, safe for concurrent reads.
type WalkableGrid struct {
	FloorID    string
	Resolution float64

	minIX, minIY int // lattice index of cell (0,0)
	cols, rows   int
	cells        []bool // row-major, true = walkable
	walkable     int
}

// Rasterize classifies every lattice point inside the floor's padded bounding
// box as walkable or blocked. A point is blocked when it lies closer than
// WallClearanceFactor*resolution to any wall.
func Rasterize(floor *model.Floor, m *model.MapData) *WalkableGrid {
	res := m.GridResolution
	g := &WalkableGrid{FloorID: floor.ID, Resolution: res}

	bound, ok := floorBound(floor)
	if !ok {
		return g
	}
	bound = bound.Pad(BoundsPadding)

	minIX := max(int(math.Floor(bound.Min.X()/res)), 0)
	minIY := max(int(math.Floor(bound.Min.Y()/res)), 0)
	maxIX := min(int(math.Ceil(bound.Max.X()/res)), int(math.Floor(m.Width/res)))
	maxIY := min(int(math.Ceil(bound.Max.Y()/res)), int(math.Floor(m.Height/res)))
	if maxIX < minIX || maxIY < minIY {
		return g
	}

	g.minIX, g.minIY = minIX, minIY
	g.cols = maxIX - minIX + 1
	g.rows = maxIY - minIY + 1
	g.cells = make([]bool, g.cols*g.rows)

	walls := solidWalls(floor.Walls)
	clearanceSq := (WallClearanceFactor * res) * (WallClearanceFactor * res)

	for row := range g.rows {
		for col := range g.cols {
			p := model.Point{X: float64(minIX+col) * res, Y: float64(minIY+row) * res}
			if nearWall(p, walls, clearanceSq) {
				continue
			}
			g.cells[row*g.cols+col] = true
			g.walkable++
		}
	}
	return g
}

// Snap rounds p to the nearest lattice index.
func (g *WalkableGrid) Snap(p model.Point) (int, int) {
	return int(math.Round(p.X / g.Resolution)), int(math.Round(p.Y / g.Resolution))
}

// LatticePoint returns the world position of lattice index (ix, iy).
func (g *WalkableGrid) LatticePoint(ix, iy int) model.Point {
	return model.Point{X: float64(ix) * g.Resolution, Y: float64(iy) * g.Resolution}
}

// Walkable reports whether lattice index (ix, iy) is passable.
// Indices outside the rasterized region are blocked.
func (g *WalkableGrid) Walkable(ix, iy int) bool {
	idx, ok := g.index(ix, iy)
	return ok && g.cells[idx]
}

// Contains reports whether p, snapped to the lattice, is walkable.
func (g *WalkableGrid) Contains(p model.Point) bool {
	return g.Walkable(g.Snap(p))
}

// Len returns the number of walkable lattice points.
func (g *WalkableGrid) Len() int {
	return g.walkable
}

func (g *WalkableGrid) index(ix, iy int) (int, bool) {
	col := ix - g.minIX
	row := iy - g.minIY
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return 0, false
	}
	return row*g.cols + col, true
}

func (g *WalkableGrid) coords(idx int) (int, int) {
	return g.minIX + idx%g.cols, g.minIY + idx/g.cols
}

// floorBound is the union of wall endpoints and POI positions.
func floorBound(floor *model.Floor) (orb.Bound, bool) {
	pts := make(orb.MultiPoint, 0, 2*len(floor.Walls)+len(floor.POIs))
	for _, w := range floor.Walls {
		pts = append(pts, orb.Point{w.Start.X, w.Start.Y}, orb.Point{w.End.X, w.End.Y})
	}
	for _, p := range floor.POIs {
		pts = append(pts, orb.Point{p.Position.X, p.Position.Y})
	}
	if len(pts) == 0 {
		return orb.Bound{}, false
	}
	return pts.Bound(), true
}

// solidWalls drops zero-length walls; they have no extent to block.
func solidWalls(walls []model.Wall) []model.Wall {
	out := make([]model.Wall, 0, len(walls))
	for _, w := range walls {
		if w.Start.X == w.End.X && w.Start.Y == w.End.Y {
			continue
		}
		out = append(out, w)
	}
	return out
}

func nearWall(p model.Point, walls []model.Wall, clearanceSq float64) bool {
	for _, w := range walls {
		proj, _ := ProjectOntoSegment(p, w.Start, w.End)
		if DistanceSquared(p, proj) < clearanceSq {
			return true
		}
	}
	return false
}
