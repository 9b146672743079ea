package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wayfinder/internal/model"
)

// bend returns a 3-point path that walks 100 units along +X and then turns
// by deg degrees (positive = clockwise on the plan) for another 100 units.
func bend(deg float64) []model.Point {
	rad := deg * math.Pi / 180
	return []model.Point{
		pt(0, 0, "a"),
		pt(100, 0, "a"),
		pt(100+100*math.Cos(rad), 100*math.Sin(rad), "a"),
	}
}

func countType(ins []model.Instruction, typ model.InstructionType) int {
	n := 0
	for _, in := range ins {
		if in.Type == typ {
			n++
		}
	}
	return n
}

func TestInstructionsTurnThreshold(t *testing.T) {
	m := twoFloorMap()

	above := Instructions(bend(31), m)
	assert.Equal(t, 1, countType(above, model.InstructionTurn))

	below := Instructions(bend(29), m)
	assert.Equal(t, 0, countType(below, model.InstructionTurn))
}

func TestInstructionsTurnDirections(t *testing.T) {
	m := twoFloorMap()

	right := Instructions(bend(90), m)
	require.Len(t, right, 3)
	assert.Equal(t, model.Instruction{Type: model.InstructionMove, Distance: 100, Text: "Head towards destination for 100 feet"}, right[0])
	assert.Equal(t, model.Instruction{Type: model.InstructionTurn, Direction: model.DirectionRight, Distance: 100, Text: "Turn right"}, right[1],
		"turn text keeps no distance suffix")
	assert.Equal(t, model.InstructionArrival, right[2].Type)

	left := Instructions(bend(-45), m)
	require.Len(t, left, 3)
	assert.Equal(t, model.DirectionLeft, left[1].Direction)
	assert.Equal(t, "Turn left", left[1].Text)
}

func TestInstructionsStraightAccumulates(t *testing.T) {
	path := []model.Point{pt(0, 0, "a"), pt(30, 0, "a"), pt(60, 0, "a"), pt(90.4, 0, "a")}

	ins := Instructions(path, twoFloorMap())
	require.Len(t, ins, 2)
	assert.InDelta(t, 90.4, ins[0].Distance, 1e-9)
	assert.Equal(t, "Head towards destination for 90 feet", ins[0].Text)
	assert.Equal(t, model.Instruction{Type: model.InstructionArrival, Text: "You have arrived at your destination"}, ins[1])
}

func TestInstructionsFloorChange(t *testing.T) {
	path := []model.Point{
		pt(20, 20, "a"), pt(100, 20, "a"),
		pt(100, 20, "b"), pt(100, 60, "b"),
	}

	ins := Instructions(path, twoFloorMap())
	require.Len(t, ins, 4)
	assert.Equal(t, "Head towards destination for 80 feet", ins[0].Text)
	assert.Equal(t, model.Instruction{Type: model.InstructionMove, Text: "Take elevator/stairs to Level 2"}, ins[1])
	assert.Equal(t, model.Instruction{Type: model.InstructionMove, Distance: 40, Text: "Continue on this floor for 40 feet"}, ins[2])
	assert.Equal(t, model.InstructionArrival, ins[3].Type)
}

func TestInstructionsNoTurnAcrossFloorChange(t *testing.T) {
	// Heading reverses between the floors; that is not a turn.
	path := []model.Point{
		pt(20, 20, "a"), pt(100, 20, "a"),
		pt(100, 20, "b"), pt(20, 20, "b"),
	}

	ins := Instructions(path, twoFloorMap())
	assert.Equal(t, 0, countType(ins, model.InstructionTurn))
}

func TestInstructionsUnknownFloorFallsBackToID(t *testing.T) {
	path := []model.Point{pt(0, 0, "a"), pt(0, 0, "roof")}

	ins := Instructions(path, twoFloorMap())
	assert.Equal(t, "Take elevator/stairs to roof", ins[1].Text)
}

func TestInstructionsSkipRepeatedPoints(t *testing.T) {
	path := []model.Point{pt(0, 0, "a"), pt(50, 0, "a"), pt(50, 0, "a"), pt(100, 0, "a")}

	ins := Instructions(path, twoFloorMap())
	assert.Equal(t, 0, countType(ins, model.InstructionTurn))
}

func TestInstructionsAlwaysEndWithOneArrival(t *testing.T) {
	paths := [][]model.Point{
		nil,
		{pt(10, 10, "a")},
		{pt(10, 10, "a"), pt(20, 10, "a")},
		bend(90),
		{pt(0, 0, "a"), pt(10, 0, "a"), pt(10, 0, "b"), pt(10, 10, "b"), pt(20, 10, "b")},
	}

	for _, p := range paths {
		ins := Instructions(p, twoFloorMap())
		require.NotEmpty(t, ins)
		assert.Equal(t, model.InstructionArrival, ins[len(ins)-1].Type)
		assert.Equal(t, 1, countType(ins, model.InstructionArrival))
	}
}

func TestInstructionsDeterministic(t *testing.T) {
	path := bend(60)
	assert.Equal(t, Instructions(path, twoFloorMap()), Instructions(path, twoFloorMap()))
}

func TestHeadingChange(t *testing.T) {
	assert.InDelta(t, 90.0, HeadingChange(pt(0, 0, ""), pt(10, 0, ""), pt(10, 10, "")), 1e-9)
	assert.InDelta(t, -90.0, HeadingChange(pt(0, 0, ""), pt(10, 0, ""), pt(10, -10, "")), 1e-9)
	// Crossing the ±180° seam.
	assert.InDelta(t, 20.0, HeadingChange(pt(0, 0, ""), pt(-10, 1.7632698070846498, ""), pt(-20, 0, "")), 1e-6)
}
