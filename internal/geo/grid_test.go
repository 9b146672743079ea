package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wayfinder/internal/model"
)

func TestRasterizeSingleWall(t *testing.T) {
	m := &model.MapData{
		Width: 100, Height: 100, GridResolution: 10,
		Floors: []model.Floor{{ID: "f1", Walls: []model.Wall{wall("f1", 50, 0, 50, 100)}}},
	}

	g := Rasterize(&m.Floors[0], m)
	require.NotNil(t, g)
	assert.Equal(t, "f1", g.FloorID)

	assert.False(t, g.Contains(pt(50, 50)), "point on the wall must be blocked")
	assert.True(t, g.Contains(pt(30, 50)))
	assert.True(t, g.Contains(pt(70, 50)))

	// 0.4*10 = 4 units clearance: neighbours one cell away are 10 units off the wall.
	assert.True(t, g.Contains(pt(40, 50)))
	assert.True(t, g.Contains(pt(60, 50)))
}

func TestRasterizeBoundsArePaddedAndClamped(t *testing.T) {
	m := &model.MapData{
		Width: 1000, Height: 1000, GridResolution: 10,
		Floors: []model.Floor{{
			ID: "f1",
			POIs: []model.POI{
				{ID: "a", Position: pt(200, 300), Type: model.POIInfo, FloorID: "f1"},
				{ID: "b", Position: pt(403, 517), Type: model.POIInfo, FloorID: "f1"},
			},
		}},
	}

	g := Rasterize(&m.Floors[0], m)
	// 150..460 by 250..570: 32 columns, 33 rows, no walls.
	assert.Equal(t, 32*33, g.Len())

	assert.True(t, g.Contains(pt(150, 250)))
	assert.True(t, g.Contains(pt(460, 570)), "453 and 567 round outward")
	assert.False(t, g.Contains(pt(140, 300)), "outside the padded box")
	assert.False(t, g.Contains(pt(300, 240)))
	assert.False(t, g.Contains(pt(470, 300)))
	assert.False(t, g.Contains(pt(300, 580)))
}

func TestRasterizeClampsToMapExtent(t *testing.T) {
	m := &model.MapData{
		Width: 100, Height: 80, GridResolution: 10,
		Floors: []model.Floor{{ID: "f1", Walls: boxWalls("f1", 100, 80)}},
	}

	g := Rasterize(&m.Floors[0], m)
	assert.True(t, g.Contains(pt(10, 10)))
	assert.True(t, g.Contains(pt(90, 70)))
	assert.False(t, g.Contains(pt(110, 40)), "past the map width")

	// The boundary lattice lines sit on the walls.
	assert.False(t, g.Contains(pt(0, 40)))
	assert.False(t, g.Contains(pt(100, 40)))
	assert.False(t, g.Contains(pt(50, 80)))
	assert.Equal(t, 9*7, g.Len())
}

func TestRasterizeEmptyFloor(t *testing.T) {
	m := &model.MapData{Width: 100, Height: 100, GridResolution: 10, Floors: []model.Floor{{ID: "void"}}}

	g := Rasterize(&m.Floors[0], m)
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Contains(pt(50, 50)))
}

func TestRasterizeIgnoresZeroLengthWalls(t *testing.T) {
	m := &model.MapData{
		Width: 100, Height: 100, GridResolution: 10,
		Floors: []model.Floor{{ID: "f1", Walls: []model.Wall{
			wall("f1", 0, 0, 100, 0),
			wall("f1", 50, 50, 50, 50),
		}}},
	}

	g := Rasterize(&m.Floors[0], m)
	assert.True(t, g.Contains(pt(50, 50)))
	assert.False(t, g.Contains(pt(50, 0)))
}

func TestGridSnap(t *testing.T) {
	g := &WalkableGrid{Resolution: 10}

	ix, iy := g.Snap(pt(14.9, 15))
	assert.Equal(t, 1, ix)
	assert.Equal(t, 2, iy, "halves round up")

	assert.Equal(t, pt(30, 70), g.LatticePoint(3, 7))
}
