package route

import (
	"fmt"
	"math"

	"github.com/udisondev/wayfinder/internal/geo"
	"github.com/udisondev/wayfinder/internal/model"
)

// TurnThreshold is the heading change in degrees above which a turn is announced.
const TurnThreshold = 30.0

const (
	textHead     = "Head towards destination"
	textContinue = "Continue on this floor"
	textPortal   = "Take elevator/stairs to %s"
	textLeft     = "Turn left"
	textRight    = "Turn right"
	textArrival  = "You have arrived at your destination"
)

// Instructions derives turn-by-turn directions from a route polyline.
//
// Every same-floor run opens with a move; a floor change emits a
// "take elevator/stairs" move before the next run. Heading changes above
// TurnThreshold emit a turn. Each walked segment adds its length to the most
// recent instruction. The list always ends with exactly one arrival.
//
// Move texts get a " for N feet" suffix when they carry distance; turn texts
// never do, even though turns accumulate distance too.
func Instructions(path []model.Point, m *model.MapData) []model.Instruction {
	out := make([]model.Instruction, 0, 8)
	if len(path) > 0 {
		out = append(out, move(textHead))
	}

	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]

		if cur.FloorID != prev.FloorID {
			out = append(out,
				move(fmt.Sprintf(textPortal, floorName(m, cur.FloorID))),
				move(textContinue),
			)
			continue
		}

		if i >= 2 && path[i-2].FloorID == prev.FloorID {
			if turn, ok := turnAt(path[i-2], prev, cur); ok {
				out = append(out, turn)
			}
		}

		out[len(out)-1].Distance += geo.Distance(prev, cur)
	}

	out = append(out, model.Instruction{Type: model.InstructionArrival, Text: textArrival})

	for i := range out {
		if out[i].Type == model.InstructionMove && out[i].Distance != 0 {
			out[i].Text = fmt.Sprintf("%s for %d feet", out[i].Text, int(math.Round(out[i].Distance)))
		}
	}
	return out
}

// HeadingChange returns the signed change of heading at b for the walk a→b→c,
// in (-180, 180]. Positive values turn clockwise on the floor plan (+X towards +Y).
func HeadingChange(a, b, c model.Point) float64 {
	return geo.NormalizeAngle(geo.Bearing(b, c) - geo.Bearing(a, b))
}

func turnAt(a, b, c model.Point) (model.Instruction, bool) {
	// Repeated points have no heading.
	if geo.DistanceSquared(a, b) == 0 || geo.DistanceSquared(b, c) == 0 {
		return model.Instruction{}, false
	}
	delta := HeadingChange(a, b, c)
	if math.Abs(delta) <= TurnThreshold {
		return model.Instruction{}, false
	}
	if delta < 0 {
		return model.Instruction{Type: model.InstructionTurn, Direction: model.DirectionLeft, Text: textLeft}, true
	}
	return model.Instruction{Type: model.InstructionTurn, Direction: model.DirectionRight, Text: textRight}, true
}

func move(text string) model.Instruction {
	return model.Instruction{Type: model.InstructionMove, Text: text}
}

func floorName(m *model.MapData, floorID string) string {
	if m != nil {
		if f := m.Floor(floorID); f != nil {
			return f.Name
		}
	}
	return floorID
}
