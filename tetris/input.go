package tetris

import (
	"fmt"
	"strings"
)

// Input is a discrete player command, delivered once per key-down edge.
type Input uint8

const (
	InputNone Input = iota
	InputMoveLeft
	InputMoveRight
	InputSoftDrop
	InputHardDrop
	InputRotateCW
	InputRotateCCW
)

var inputNames = map[Input]string{
	InputNone:      "none",
	InputMoveLeft:  "left",
	InputMoveRight: "right",
	InputSoftDrop:  "soft-drop",
	InputHardDrop:  "hard-drop",
	InputRotateCW:  "rotate-cw",
	InputRotateCCW: "rotate-ccw",
}

func (i Input) String() string {
	if name, ok := inputNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Input(%d)", uint8(i))
}

// ParseInput returns the input named s, as produced by Input.String.
func ParseInput(s string) (Input, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for input, name := range inputNames {
		if name == s && input != InputNone {
			return input, nil
		}
	}
	return InputNone, fmt.Errorf("unknown input %q", s)
}

// Inputs is the full set of player commands, in declaration order.
var Inputs = []Input{
	InputMoveLeft,
	InputMoveRight,
	InputSoftDrop,
	InputHardDrop,
	InputRotateCW,
	InputRotateCCW,
}
