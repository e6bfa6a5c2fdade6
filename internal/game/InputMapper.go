package game

import "time"

type InputSource interface {
	IsDirectionActive(d Direction) bool
}

// Refresher is implemented by input sources that need to advance once per
// tick before they are polled (key hold timers, scripts).
type Refresher interface {
	Refresh(delta time.Duration, view PlayerView)
}

type PlayerView struct {
	Cell   Cell
	Facing Direction
	State  MotionState
}

// InputFunc adapts a plain function to InputSource.
type InputFunc func(d Direction) bool

func (f InputFunc) IsDirectionActive(d Direction) bool { return f(d) }

type InputMapper struct {
	Source InputSource
}

func NewInputMapper(source InputSource) *InputMapper {
	return &InputMapper{Source: source}
}

// Poll returns the first active direction in Up, Left, Down, Right order.
func (m *InputMapper) Poll() (Direction, bool) {
	if m == nil || m.Source == nil {
		return 0, false
	}
	for _, d := range Directions {
		if m.Source.IsDirectionActive(d) {
			return d, true
		}
	}
	return 0, false
}

func (m *InputMapper) Refresh(delta time.Duration, view PlayerView) {
	if m == nil || m.Source == nil {
		return
	}
	if r, ok := m.Source.(Refresher); ok {
		r.Refresh(delta, view)
	}
}
