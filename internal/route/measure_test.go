package route

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wayfinder/internal/model"
)

func multiFloorPath() []model.Point {
	return []model.Point{
		pt(0, 0, "a"), pt(30, 0, "a"), pt(30, 40, "a"),
		pt(30, 40, "b"), pt(30, 100, "b"),
	}
}

func TestRuns(t *testing.T) {
	runs := Runs(multiFloorPath())
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].FloorID)
	assert.Len(t, runs[0].Points, 3)
	assert.Equal(t, "b", runs[1].FloorID)
	assert.Equal(t, orb.LineString{{30, 40}, {30, 100}}, runs[1].LineString())

	assert.Empty(t, Runs(nil))
}

func TestLength(t *testing.T) {
	assert.InDelta(t, 130.0, Length(multiFloorPath()), 1e-9, "floor hop adds nothing")
	assert.Equal(t, 0.0, Length(nil))
	assert.Equal(t, 0.0, Length([]model.Point{pt(5, 5, "a")}))
}

func TestPointAt(t *testing.T) {
	path := multiFloorPath()

	tests := []struct {
		name     string
		distance float64
		want     model.Point
	}{
		{name: "start", distance: 0, want: pt(0, 0, "a")},
		{name: "negative clamps", distance: -5, want: pt(0, 0, "a")},
		{name: "first segment", distance: 15, want: pt(15, 0, "a")},
		{name: "second segment", distance: 50, want: pt(30, 20, "a")},
		{name: "after floor change", distance: 100, want: pt(30, 70, "b")},
		{name: "past end clamps", distance: 1000, want: pt(30, 100, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PointAt(path, tt.distance)
			require.True(t, ok)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.Equal(t, tt.want.FloorID, got.FloorID)
		})
	}

	_, ok := PointAt(nil, 10)
	assert.False(t, ok)
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection(multiFloorPath(), twoFloorMap())
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, orb.LineString{{0, 0}, {30, 0}, {30, 40}}, first.Geometry)
	assert.Equal(t, "a", first.Properties["floor_id"])
	assert.Equal(t, "Level 1", first.Properties["floor_name"])
	assert.Equal(t, 1, first.Properties["level"])
	assert.InDelta(t, 70.0, first.Properties["length"], 1e-9)

	second := fc.Features[1]
	assert.Equal(t, 1, second.Properties["seq"])
	assert.Equal(t, "Level 2", second.Properties["floor_name"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
	assert.Contains(t, string(data), `"LineString"`)
}

func TestFeatureCollectionSinglePointRun(t *testing.T) {
	path := []model.Point{pt(10, 10, "a"), pt(10, 10, "b"), pt(50, 10, "b")}

	fc := FeatureCollection(path, nil)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.Point{10, 10}, fc.Features[0].Geometry)
	assert.Equal(t, 0.0, fc.Features[0].Properties["length"])
	_, hasName := fc.Features[0].Properties["floor_name"]
	assert.False(t, hasName, "no map, no floor metadata")
}
