package geo

import (
	"github.com/udisondev/wayfinder/internal/model"
)

func pt(x, y float64) model.Point {
	return model.Point{X: x, Y: y}
}

func wall(floorID string, x1, y1, x2, y2 float64) model.Wall {
	return model.Wall{Start: pt(x1, y1), End: pt(x2, y2), FloorID: floorID}
}

// boxWalls returns the four outer walls of a w×h rectangle anchored at the origin.
func boxWalls(floorID string, w, h float64) []model.Wall {
	return []model.Wall{
		wall(floorID, 0, 0, w, 0),
		wall(floorID, w, 0, w, h),
		wall(floorID, w, h, 0, h),
		wall(floorID, 0, h, 0, 0),
	}
}

// gapFloorMap is a 100×100 room split by a wall at x=50 with an opening
// between y=40 and y=60.
func gapFloorMap() *model.MapData {
	walls := boxWalls("f1", 100, 100)
	walls = append(walls,
		wall("f1", 50, 0, 50, 40),
		wall("f1", 50, 60, 50, 100),
	)
	return &model.MapData{
		Width:          100,
		Height:         100,
		GridResolution: 10,
		Floors:         []model.Floor{{ID: "f1", Name: "Level 1", Level: 1, Walls: walls}},
	}
}

// sealedFloorMap is the gap floor with the opening closed.
func sealedFloorMap() *model.MapData {
	m := gapFloorMap()
	m.Floors[0].Walls = append(m.Floors[0].Walls, wall("f1", 50, 40, 50, 60))
	return m
}

// openFloorMap is a 200×200 room with no interior walls.
func openFloorMap() *model.MapData {
	return &model.MapData{
		Width:          200,
		Height:         200,
		GridResolution: 10,
		Floors:         []model.Floor{{ID: "open", Name: "Open", Level: 1, Walls: boxWalls("open", 200, 200)}},
	}
}
