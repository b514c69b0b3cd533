package types

import "fmt"

type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// DefaultDirection is the heading of a snake at the start of a game.
const DefaultDirection = DirectionRight

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	case DirectionLeft:
		return "LEFT"
	case DirectionRight:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// Delta returns the unit step for the direction.
// The y axis grows downwards, so UP decrements y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection parses the names returned by Direction.String, case-sensitively.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "UP":
		return DirectionUp, nil
	case "DOWN":
		return DirectionDown, nil
	case "LEFT":
		return DirectionLeft, nil
	case "RIGHT":
		return DirectionRight, nil
	default:
		return DefaultDirection, fmt.Errorf("unknown direction: %s", s)
	}
}
