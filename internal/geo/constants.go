package geo

// Rasterization and clearance configuration.
const (
	// WallClearanceFactor scales the grid resolution into the minimum distance
	// a walkable lattice point (or a line-of-sight sample) keeps from any wall.
	WallClearanceFactor = 0.4

	// BoundsPadding is added around a floor's occupied extent before rasterizing.
	BoundsPadding = 50.0
)

// A* step weights in lattice units.
const (
	WeightOrthogonal = 1.0
	WeightDiagonal   = 1.4142135623730951 // sqrt(2)
)
