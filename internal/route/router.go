package route

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/wayfinder/internal/geo"
	"github.com/udisondev/wayfinder/internal/model"
)

// Route errors. Endpoint and reachability failures come straight from geo.
var (
	ErrFloorNotFound       = errors.New("floor not found")
	ErrEndpointNotWalkable = geo.ErrEndpointNotWalkable
	ErrUnreachable         = geo.ErrUnreachable
)

// PortalTolerance is the max per-axis offset between two portals that are
// treated as the same vertical shaft.
const PortalTolerance = 50.0

// PortalFilter narrows the portals (elevators and stairs) considered for a
// floor change. It never widens the set: non-portal POIs are never offered.
type PortalFilter func(model.POI) bool

// AnyPortal accepts both elevators and stairs.
func AnyPortal(model.POI) bool { return true }

// ElevatorsOnly is the wheelchair-accessible policy.
func ElevatorsOnly(p model.POI) bool { return p.Type == model.POIElevator }

// Find computes a route from start to end. Both points must carry FloorID.
// On a single floor it is one search; across floors every matching portal
// pair is tried and the pair with the fewest total waypoints wins (ties go to
// the first pair in start-portal, end-portal order). A nil filter means
// AnyPortal.
//
// The pair metric counts waypoints, not walked distance.
func Find(start, end model.Point, m *model.MapData, grids geo.GridSet, filter PortalFilter) ([]model.Point, error) {
	startFloor, startGrid, err := floorAndGrid(m, grids, start.FloorID)
	if err != nil {
		return nil, err
	}
	endFloor, endGrid, err := floorAndGrid(m, grids, end.FloorID)
	if err != nil {
		return nil, err
	}

	if start.FloorID == end.FloorID {
		return geo.FindPath(start, end, startFloor, startGrid)
	}

	// A blocked portal only rules out its pair; a blocked endpoint rules out all of them.
	if !startGrid.Contains(start) {
		return nil, fmt.Errorf("%w: start on %q", ErrEndpointNotWalkable, start.FloorID)
	}
	if !endGrid.Contains(end) {
		return nil, fmt.Errorf("%w: end on %q", ErrEndpointNotWalkable, end.FloorID)
	}

	if filter == nil {
		filter = AnyPortal
	}
	startPortals := portals(startFloor, filter)
	endPortals := portals(endFloor, filter)

	var best []model.Point
	bestCost := math.MaxInt
	for _, p1 := range startPortals {
		for _, p2 := range endPortals {
			if !SameShaft(p1, p2) {
				continue
			}
			leg1, err := geo.FindPath(start, p1.Position, startFloor, startGrid)
			if err != nil {
				continue
			}
			leg2, err := geo.FindPath(p2.Position, end, endFloor, endGrid)
			if err != nil {
				continue
			}
			if cost := len(leg1) + len(leg2); cost < bestCost {
				bestCost = cost
				best = append(append(make([]model.Point, 0, cost), leg1...), leg2...)
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no usable portal between %q and %q", ErrUnreachable, start.FloorID, end.FloorID)
	}
	return best, nil
}

// SameShaft reports whether two portals are within PortalTolerance on both axes.
func SameShaft(a, b model.POI) bool {
	return math.Abs(a.Position.X-b.Position.X) < PortalTolerance &&
		math.Abs(a.Position.Y-b.Position.Y) < PortalTolerance
}

func portals(floor *model.Floor, filter PortalFilter) []model.POI {
	var out []model.POI
	for _, p := range floor.Portals() {
		if filter(p) {
			out = append(out, p)
		}
	}
	return out
}

func floorAndGrid(m *model.MapData, grids geo.GridSet, floorID string) (*model.Floor, *geo.WalkableGrid, error) {
	floor := m.Floor(floorID)
	if floor == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrFloorNotFound, floorID)
	}
	grid, ok := grids[floorID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: no grid for %q", ErrFloorNotFound, floorID)
	}
	return floor, grid, nil
}
