package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hallMap has three floor cells in a row, walls all around.
const hallMap = `
00000
01110
00000
`

func newTestManager(t *testing.T, text string, input InputSource, decay time.Duration) (*GameManager, *recordingSync) {
	t.Helper()
	sync := &recordingSync{}
	gm, err := NewGameManager(Options{
		Grid:          mustParse(t, text),
		Start:         Cell{Col: 1, Row: 1},
		Random:        NewRandom(7),
		Input:         input,
		Sync:          sync,
		DecayInterval: decay,
	})
	require.NoError(t, err)
	return gm, sync
}

func TestNewGameManagerValidates(t *testing.T) {
	grid := mustParse(t, hallMap)

	_, err := NewGameManager(Options{Random: NewRandom(1)})
	assert.Error(t, err)

	_, err = NewGameManager(Options{Grid: grid})
	assert.Error(t, err)

	_, err = NewGameManager(Options{Grid: grid, Random: NewRandom(1), Start: Cell{Col: 9, Row: 9}})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHeldDirectionWalksThenBumps(t *testing.T) {
	gm, _ := newTestManager(t, hallMap, holdInput(Right), time.Hour)

	var walks, bumps int
	gm.OnWalked(func(ev WalkEvent) {
		if ev.Blocked {
			bumps++
		} else {
			walks++
		}
	})

	ticks := gm.Step(2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 200, ticks)
	assert.Equal(t, 200, gm.Ticks)
	assert.Equal(t, 2*time.Second, gm.Clock)
	assert.Equal(t, Cell{Col: 3, Row: 1}, gm.Player.Cell)
	assert.Equal(t, 2, walks)
	assert.GreaterOrEqual(t, bumps, 1)
	assert.Zero(t, gm.Mutations)
}

func TestWalkChainsWithoutIdleGap(t *testing.T) {
	gm, _ := newTestManager(t, hallMap, holdInput(Right), time.Hour)

	var at []int
	gm.OnWalked(func(WalkEvent) { at = append(at, gm.Ticks) })

	gm.Step(820*time.Millisecond, 10*time.Millisecond)

	// the second walk starts on the same tick the first one lands
	require.GreaterOrEqual(t, len(at), 2)
	assert.Equal(t, []int{1, 41}, at[:2])
}

func TestDecayRunsInsideTick(t *testing.T) {
	gm, sync := newTestManager(t, hallMap, nil, 250*time.Millisecond)

	gm.Step(time.Second, 10*time.Millisecond)

	assert.Equal(t, 3, gm.Mutations)
	assert.Len(t, sync.changes, 3)
	assert.Equal(t, Idle, gm.Player.State())
}

func TestStartGameLoopStopsOnCancel(t *testing.T) {
	gm, _ := newTestManager(t, hallMap, holdInput(Right), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	gm.StartGameLoop(ctx, 5*time.Millisecond)

	assert.False(t, gm.IsRunning)
	assert.Positive(t, gm.Ticks)
	assert.Positive(t, gm.Clock)
}
