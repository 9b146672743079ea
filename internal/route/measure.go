package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/udisondev/wayfinder/internal/model"
)

// Run is a maximal same-floor stretch of a route.
type Run struct {
	FloorID string
	Points  []model.Point
}

// Runs splits a route at every floor change.
func Runs(path []model.Point) []Run {
	var runs []Run
	for i, p := range path {
		if i == 0 || p.FloorID != path[i-1].FloorID {
			runs = append(runs, Run{FloorID: p.FloorID})
		}
		last := &runs[len(runs)-1]
		last.Points = append(last.Points, p)
	}
	return runs
}

// LineString converts the run to an orb line string in floor coordinates.
func (r Run) LineString() orb.LineString {
	ls := make(orb.LineString, len(r.Points))
	for i, p := range r.Points {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// Length returns the walked length of a route in feet. Floor changes
// (elevator or stairs hops) add nothing.
func Length(path []model.Point) float64 {
	var total float64
	for _, r := range Runs(path) {
		total += planar.Length(r.LineString())
	}
	return total
}

// PointAt returns the position reached after walking distance feet along the
// route. Distances are clamped to the route ends; an empty route yields false.
func PointAt(path []model.Point, distance float64) (model.Point, bool) {
	if len(path) == 0 {
		return model.Point{}, false
	}
	if distance <= 0 {
		return path[0], true
	}

	var covered float64
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if a.FloorID != b.FloorID {
			continue
		}
		seg := planar.Distance(orb.Point{a.X, a.Y}, orb.Point{b.X, b.Y})
		if seg > 0 && covered+seg >= distance {
			frac := (distance - covered) / seg
			return model.Point{
				X:       a.X + frac*(b.X-a.X),
				Y:       a.Y + frac*(b.Y-a.Y),
				FloorID: a.FloorID,
			}, true
		}
		covered += seg
	}
	return path[len(path)-1], true
}
