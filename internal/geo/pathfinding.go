package geo

import (
	"container/heap"
	"math"

	"github.com/udisondev/wayfinder/internal/model"
)

// FindPath finds a walkable path from start to end on a single floor.
// Both endpoints are snapped to the lattice; the A* cell path is smoothed
// against the floor's walls and every returned point is tagged with floor.ID.
//
// Errors: ErrEndpointNotWalkable, ErrUnreachable, ErrNoGrid.
func FindPath(start, end model.Point, floor *model.Floor, grid *WalkableGrid) ([]model.Point, error) {
	raw, err := SearchCells(start, end, grid)
	if err != nil {
		return nil, err
	}

	path := Smooth(raw, floor.Walls, grid.Resolution)
	for i := range path {
		path[i].FloorID = floor.ID
	}
	return path, nil
}

// SearchCells runs A* over the grid and returns the raw lattice path from
// snapped start to snapped end (both inclusive), without smoothing.
func SearchCells(start, end model.Point, grid *WalkableGrid) ([]model.Point, error) {
	if grid == nil {
		return nil, ErrNoGrid
	}

	sx, sy := grid.Snap(start)
	ex, ey := grid.Snap(end)
	startIdx, okStart := grid.index(sx, sy)
	goalIdx, okGoal := grid.index(ex, ey)
	if !okStart || !okGoal || !grid.cells[startIdx] || !grid.cells[goalIdx] {
		return nil, ErrEndpointNotWalkable
	}

	// Same cell, already there
	if startIdx == goalIdx {
		return []model.Point{grid.LatticePoint(sx, sy)}, nil
	}

	parent, ok := astar(grid, startIdx, goalIdx)
	if !ok {
		return nil, ErrUnreachable
	}

	// Walk predecessors back from the goal, then reverse.
	path := make([]model.Point, 0, 32)
	for idx := goalIdx; idx != -1; idx = int(parent[idx]) {
		path = append(path, grid.LatticePoint(grid.coords(idx)))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// neighborOffsets lists the 8 expansion directions in a fixed order:
// orthogonals first, then diagonals. The order is part of tie-breaking.
var neighborOffsets = [8]struct {
	dx, dy int
	weight float64
}{
	{1, 0, WeightOrthogonal},
	{-1, 0, WeightOrthogonal},
	{0, 1, WeightOrthogonal},
	{0, -1, WeightOrthogonal},
	{1, 1, WeightDiagonal},
	{1, -1, WeightDiagonal},
	{-1, 1, WeightDiagonal},
	{-1, -1, WeightDiagonal},
}

// astar searches in lattice units over the grid's cell indices. Per-cell state
// lives in flat slices sized to the grid. Returns the predecessor table.
func astar(grid *WalkableGrid, startIdx, goalIdx int) ([]int32, bool) {
	n := len(grid.cells)
	gCost := make([]float64, n)
	parent := make([]int32, n)
	closed := make([]bool, n)
	for i := range gCost {
		gCost[i] = math.Inf(1)
		parent[i] = -1
	}

	gx, gy := grid.coords(goalIdx)
	heuristic := func(idx int) float64 {
		x, y := grid.coords(idx)
		return math.Hypot(float64(x-gx), float64(y-gy))
	}

	open := &nodeHeap{}
	var seq uint64
	push := func(idx int, g float64) {
		h := heuristic(idx)
		heap.Push(open, &searchNode{idx: idx, g: g, h: h, f: g + h, seq: seq})
		seq++
	}

	gCost[startIdx] = 0
	push(startIdx, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		if closed[current.idx] {
			continue // stale entry
		}
		if current.idx == goalIdx {
			return parent, true
		}
		closed[current.idx] = true

		cx, cy := grid.coords(current.idx)
		for _, d := range neighborOffsets {
			nIdx, ok := grid.index(cx+d.dx, cy+d.dy)
			if !ok || !grid.cells[nIdx] || closed[nIdx] {
				continue
			}
			g := current.g + d.weight
			if g >= gCost[nIdx] {
				continue
			}
			gCost[nIdx] = g
			parent[nIdx] = int32(current.idx)
			push(nIdx, g)
		}
	}

	return nil, false
}

// searchNode is an open-list entry. Superseded entries stay in the heap and
// are skipped when popped after their cell has been closed.
type searchNode struct {
	idx int
	g   float64
	h   float64
	f   float64
	seq uint64 // insertion order
}

// nodeHeap is a min-heap by f, then h, then insertion order.
type nodeHeap []*searchNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*searchNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	*h = old[:n-1]
	return node
}
