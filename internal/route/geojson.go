package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/udisondev/wayfinder/internal/model"
)

// FeatureCollection exports a route as GeoJSON in floor coordinates: one
// feature per floor run, a LineString for walked runs and a Point for runs of
// a single waypoint. Each feature carries floor_id, floor_name, level, seq and
// length properties.
func FeatureCollection(path []model.Point, m *model.MapData) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, r := range Runs(path) {
		var g orb.Geometry
		if len(r.Points) == 1 {
			g = orb.Point{r.Points[0].X, r.Points[0].Y}
		} else {
			g = r.LineString()
		}

		f := geojson.NewFeature(g)
		f.Properties["seq"] = i
		f.Properties["floor_id"] = r.FloorID
		f.Properties["length"] = planar.Length(g)
		if m != nil {
			if floor := m.Floor(r.FloorID); floor != nil {
				f.Properties["floor_name"] = floor.Name
				f.Properties["level"] = floor.Level
			}
		}
		fc.Append(f)
	}
	return fc
}
