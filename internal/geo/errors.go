package geo

import "errors"

var (
	// ErrEndpointNotWalkable is returned when start or end snaps to a blocked lattice point.
	ErrEndpointNotWalkable = errors.New("endpoint is not on a walkable cell")
	// ErrUnreachable is returned when the search frontier empties before the goal.
	ErrUnreachable = errors.New("destination unreachable")
	// ErrNoGrid is returned when a search is attempted without a walkable grid.
	ErrNoGrid = errors.New("walkable grid is missing")
)
