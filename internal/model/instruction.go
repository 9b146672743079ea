package model

// InstructionType is the kind of navigation step.
type InstructionType string

const (
	InstructionMove    InstructionType = "move"
	InstructionTurn    InstructionType = "turn"
	InstructionArrival InstructionType = "arrival"
)

// Direction is the side of a turn. Empty for non-turn instructions.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Instruction is one human-readable navigation step.
// Distance is in feet, accumulated over the segments walked after the step.
type Instruction struct {
	Type      InstructionType `json:"type"`
	Direction Direction       `json:"direction,omitempty"`
	Distance  float64         `json:"distance,omitempty"`
	Text      string          `json:"text"`
}
