package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation errors for floor plan data.
var (
	ErrInvalidDimensions = errors.New("map width and height must be positive")
	ErrInvalidResolution = errors.New("grid resolution must be positive")
	ErrDuplicateFloor    = errors.New("duplicate floor id")
	ErrDuplicatePOI      = errors.New("duplicate poi id")
	ErrFloorMismatch     = errors.New("element floor id does not match its floor")
	ErrUnknownPOIType    = errors.New("unknown poi type")
	ErrNonFinite         = errors.New("coordinate is not a finite number")
)

// Point is a location in a floor's local 2D coordinate space.
// FloorID is empty for raw single-floor geometry.
type Point struct {
	X       float64 `yaml:"x" json:"x"`
	Y       float64 `yaml:"y" json:"y"`
	FloorID string  `yaml:"floor_id,omitempty" json:"floor_id,omitempty"`
}

// OnFloor returns a copy of p tagged with floorID (immutable pattern).
func (p Point) OnFloor(floorID string) Point {
	p.FloorID = floorID
	return p
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Wall is an impassable line segment.
type Wall struct {
	Start   Point  `yaml:"start" json:"start"`
	End     Point  `yaml:"end" json:"end"`
	FloorID string `yaml:"floor_id" json:"floor_id"`
}

// POIType classifies a point of interest.
type POIType string

const (
	POIDepartment POIType = "department"
	POIEntrance   POIType = "entrance"
	POIElevator   POIType = "elevator"
	POIStairs     POIType = "stairs"
	POIRestroom   POIType = "restroom"
	POICafe       POIType = "cafe"
	POIInfo       POIType = "info"
	POIPharmacy   POIType = "pharmacy"
	POIWards      POIType = "wards"
	POITheatre    POIType = "theatre"
)

// Valid reports whether t is one of the known POI types.
func (t POIType) Valid() bool {
	switch t {
	case POIDepartment, POIEntrance, POIElevator, POIStairs, POIRestroom,
		POICafe, POIInfo, POIPharmacy, POIWards, POITheatre:
		return true
	}
	return false
}

// IsPortal reports whether a POI of this type connects floors.
func (t POIType) IsPortal() bool {
	return t == POIElevator || t == POIStairs
}

// POI is a named point of interest on a floor.
type POI struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Position Point   `yaml:"position" json:"position"`
	Type     POIType `yaml:"type" json:"type"`
	FloorID  string  `yaml:"floor_id" json:"floor_id"`
}

// Floor is one building level.
type Floor struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
	POIs  []POI  `yaml:"pois" json:"pois"`
	Walls []Wall `yaml:"walls" json:"walls,omitempty"`
}

// Portals returns the floor's elevator and stairs POIs in declaration order.
func (f *Floor) Portals() []POI {
	var out []POI
	for _, p := range f.POIs {
		if p.Type.IsPortal() {
			out = append(out, p)
		}
	}
	return out
}

// MapData is the complete static floor plan. Immutable once loaded.
type MapData struct {
	Width          float64 `yaml:"width" json:"width"`
	Height         float64 `yaml:"height" json:"height"`
	GridResolution float64 `yaml:"grid_resolution" json:"grid_resolution"`
	Floors         []Floor `yaml:"floors" json:"floors"`
}

// Floor returns the floor with the given id, or nil.
func (m *MapData) Floor(id string) *Floor {
	for i := range m.Floors {
		if m.Floors[i].ID == id {
			return &m.Floors[i]
		}
	}
	return nil
}

// POI returns the point of interest with the given id, or nil.
func (m *MapData) POI(id string) *POI {
	for i := range m.Floors {
		f := &m.Floors[i]
		for j := range f.POIs {
			if f.POIs[j].ID == id {
				return &f.POIs[j]
			}
		}
	}
	return nil
}

// POIs returns every POI across all floors, floor by floor.
func (m *MapData) POIs() []POI {
	var out []POI
	for _, f := range m.Floors {
		out = append(out, f.POIs...)
	}
	return out
}

// SearchPOIs returns POIs whose name or type contains query (case-insensitive).
// An empty query matches nothing.
func (m *MapData) SearchPOIs(query string) []POI {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []POI
	for _, f := range m.Floors {
		for _, p := range f.POIs {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(string(p.Type), q) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate checks structural invariants of the floor plan.
func (m *MapData) Validate() error {
	// Negated comparisons also reject NaN.
	if !(m.Width > 0) || !(m.Height > 0) || math.IsInf(m.Width, 0) || math.IsInf(m.Height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, m.Width, m.Height)
	}
	if !(m.GridResolution > 0) || math.IsInf(m.GridResolution, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidResolution, m.GridResolution)
	}

	floors := make(map[string]struct{}, len(m.Floors))
	pois := make(map[string]struct{})
	for _, f := range m.Floors {
		if _, dup := floors[f.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateFloor, f.ID)
		}
		floors[f.ID] = struct{}{}

		for _, p := range f.POIs {
			if _, dup := pois[p.ID]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicatePOI, p.ID)
			}
			pois[p.ID] = struct{}{}
			if p.FloorID != f.ID {
				return fmt.Errorf("%w: poi %q has floor %q, declared on %q", ErrFloorMismatch, p.ID, p.FloorID, f.ID)
			}
			if !p.Type.Valid() {
				return fmt.Errorf("%w: poi %q type %q", ErrUnknownPOIType, p.ID, p.Type)
			}
			if !p.Position.finite() {
				return fmt.Errorf("%w: poi %q at (%v, %v)", ErrNonFinite, p.ID, p.Position.X, p.Position.Y)
			}
		}
		for i, w := range f.Walls {
			if w.FloorID != f.ID {
				return fmt.Errorf("%w: wall #%d has floor %q, declared on %q", ErrFloorMismatch, i, w.FloorID, f.ID)
			}
			if !w.Start.finite() || !w.End.finite() {
				return fmt.Errorf("%w: wall #%d on %q", ErrNonFinite, i, f.ID)
			}
		}
	}
	return nil
}
