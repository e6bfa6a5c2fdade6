package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// boxMap is a 4x3 room: (1,1) and (2,1) are floor, everything else is wall.
const boxMap = `
0000
0110
0000
`

// cellMap is a single open cell surrounded by walls.
const cellMap = `
000
010
000
`

func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	grid, err := ParseMap(text)
	require.NoError(t, err)
	return grid
}

// sequenceRandom replays fixed values, reduced into range.
type sequenceRandom struct {
	values []int
	next   int
}

func (r *sequenceRandom) IntN(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

type gridChange struct {
	Col, Row int
	Symbol   Symbol
}

type recordingSync struct {
	changes    []gridChange
	moves      []Vec
	animations []string
}

func (s *recordingSync) OnGridChanged(col, row int, symbol Symbol) {
	s.changes = append(s.changes, gridChange{Col: col, Row: row, Symbol: symbol})
}

func (s *recordingSync) OnEntityMoved(x, y float64) {
	s.moves = append(s.moves, Vec{X: x, Y: y})
}

func (s *recordingSync) OnAnimationChanged(key string) {
	s.animations = append(s.animations, key)
}

// holdInput reports a fixed set of directions as held.
func holdInput(dirs ...Direction) InputFunc {
	return func(d Direction) bool {
		for _, held := range dirs {
			if held == d {
				return true
			}
		}
		return false
	}
}

// testPlayer builds a player with its own tween list on grid.
func testPlayer(t *testing.T, grid *Grid) (*Player, *TweenList, *recordingSync, *[]WalkEvent) {
	t.Helper()
	tweens := &TweenList{}
	sync := &recordingSync{}
	events := &[]WalkEvent{}
	p := NewPlayer(Cell{Col: 1, Row: 1}, grid, tweens, sync, DefaultMotionSettings(), func(ev WalkEvent) {
		*events = append(*events, ev)
	})
	return p, tweens, sync, events
}

// advance runs the tween and player halves of one tick.
func advance(p *Player, tweens *TweenList, delta time.Duration, input Commander) {
	tweens.Update(delta)
	p.Update(delta, input)
}
