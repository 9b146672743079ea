package geo

import (
	"math"

	"github.com/udisondev/wayfinder/internal/model"
)

// Smooth reduces a stair-stepped lattice path to the waypoints where line of
// sight breaks. A pivot starts at path[0]; whenever the pivot cannot see
// path[i+1], path[i] is kept and becomes the new pivot. The first and last
// points are always kept, so the result is never longer than the input.
func Smooth(path []model.Point, walls []model.Wall, resolution float64) []model.Point {
	if len(path) <= 2 {
		return path
	}

	walls = solidWalls(walls)
	smoothed := make([]model.Point, 0, len(path))
	smoothed = append(smoothed, path[0])
	pivot := path[0]

	for i := 1; i < len(path)-1; i++ {
		if !lineOfSight(pivot, path[i+1], walls, resolution) {
			smoothed = append(smoothed, path[i])
			pivot = path[i]
		}
	}
	return append(smoothed, path[len(path)-1])
}

// HasLineOfSight reports whether the straight segment a→b crosses no wall and
// keeps WallClearanceFactor*resolution away from every wall, sampled every
// resolution units.
func HasLineOfSight(a, b model.Point, walls []model.Wall, resolution float64) bool {
	return lineOfSight(a, b, solidWalls(walls), resolution)
}

func lineOfSight(a, b model.Point, walls []model.Wall, resolution float64) bool {
	for _, w := range walls {
		if SegmentsIntersect(a, b, w.Start, w.End) {
			return false
		}
	}

	clearanceSq := (WallClearanceFactor * resolution) * (WallClearanceFactor * resolution)
	steps := int(math.Ceil(Distance(a, b) / resolution))
	if steps < 1 {
		steps = 1
	}
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		sample := model.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
		if nearWall(sample, walls, clearanceSq) {
			return false
		}
	}
	return true
}
