package game

import "fmt"

// Direction order doubles as input priority: Up wins over Left, Down, Right.
type Direction int

const (
	Up Direction = iota
	Left
	Down
	Right
)

var Directions = []Direction{Up, Left, Down, Right}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Clockwise returns the direction a quarter turn to the right.
func (d Direction) Clockwise() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		return Up
	}
}

func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{Col: c.Col + dx, Row: c.Row + dy}
}
