package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerStartsIdleFacingRight(t *testing.T) {
	p, _, sync, _ := testPlayer(t, mustParse(t, boxMap))

	assert.Equal(t, Idle, p.State())
	assert.Equal(t, Right, p.Facing)
	assert.Equal(t, Vec{X: 1, Y: 1}, p.Pos)
	assert.Equal(t, 96.0, p.PixelX)
	assert.Equal(t, 96.0, p.PixelY)
	assert.Equal(t, []string{"idle-right"}, sync.animations)
	require.Len(t, sync.moves, 1)
}

func TestBumpIntoWall(t *testing.T) {
	p, tweens, sync, events := testPlayer(t, mustParse(t, cellMap))

	require.True(t, p.Walk(Right))
	assert.Equal(t, Walking, p.State())
	assert.Equal(t, "walk-right", p.Animation())
	require.Len(t, *events, 1)
	assert.True(t, (*events)[0].Blocked)
	assert.Equal(t, Cell{Col: 2, Row: 1}, (*events)[0].To)

	advance(p, tweens, 50*time.Millisecond, nil)
	assert.InDelta(t, 1.05, p.Pos.X, 1e-9)

	advance(p, tweens, 50*time.Millisecond, nil)
	assert.InDelta(t, 1.1, p.Pos.X, 1e-9)
	assert.Equal(t, Walking, p.State())

	advance(p, tweens, 50*time.Millisecond, nil)
	assert.InDelta(t, 1.05, p.Pos.X, 1e-9)

	tweens.Update(50 * time.Millisecond)
	assert.Equal(t, Vec{X: 1, Y: 1}, p.Pos, "bump must land exactly on the cell before resting")
	assert.Equal(t, Resting, p.State())
	assert.Equal(t, 200*time.Millisecond, p.RestLeft())
	assert.Equal(t, "idle-right", p.Animation())

	p.Update(50*time.Millisecond, nil)
	assert.Equal(t, Resting, p.State())

	p.Update(100*time.Millisecond, nil)
	assert.Equal(t, Resting, p.State())

	p.Update(50*time.Millisecond, nil)
	assert.Equal(t, Idle, p.State())

	assert.Equal(t, Cell{Col: 1, Row: 1}, p.Cell)
	assert.Len(t, *events, 1, "walked fires once per bump")
	assert.Equal(t, []string{"idle-right", "walk-right", "idle-right"}, sync.animations)
}

func TestFreeWalk(t *testing.T) {
	p, tweens, _, events := testPlayer(t, mustParse(t, boxMap))

	require.True(t, p.Walk(Right))
	require.Len(t, *events, 1)
	assert.False(t, (*events)[0].Blocked)

	advance(p, tweens, 200*time.Millisecond, nil)
	assert.InDelta(t, 1.5, p.Pos.X, 1e-9)
	assert.Equal(t, Cell{Col: 1, Row: 1}, p.Cell, "cell only changes when the walk completes")

	advance(p, tweens, 200*time.Millisecond, nil)
	assert.Equal(t, Vec{X: 2, Y: 1}, p.Pos)
	assert.Equal(t, Cell{Col: 2, Row: 1}, p.Cell)
	assert.Equal(t, Idle, p.State())
	assert.Zero(t, p.RestLeft())
	assert.Equal(t, 160.0, p.PixelX)
}

func TestWalkIgnoredWhileBusy(t *testing.T) {
	p, tweens, _, events := testPlayer(t, mustParse(t, boxMap))

	require.True(t, p.Walk(Right))
	assert.False(t, p.Walk(Left))
	assert.Equal(t, Right, p.Facing)
	assert.Len(t, *events, 1)

	// walk to (2,1) then bump the wall at (3,1)
	advance(p, tweens, 400*time.Millisecond, nil)
	require.True(t, p.Walk(Right))
	advance(p, tweens, 100*time.Millisecond, nil)
	advance(p, tweens, 100*time.Millisecond, nil)
	require.Equal(t, Resting, p.State())

	assert.False(t, p.Walk(Left))
	assert.Equal(t, Resting, p.State())
	assert.Len(t, *events, 2)
}

func TestFacingChangesOnBump(t *testing.T) {
	p, _, _, _ := testPlayer(t, mustParse(t, boxMap))

	require.True(t, p.Walk(Up))
	assert.Equal(t, Up, p.Facing)
	assert.Equal(t, "walk-up", p.Animation())
}

func TestIdlePlayerPollsInput(t *testing.T) {
	p, tweens, _, events := testPlayer(t, mustParse(t, boxMap))
	mapper := NewInputMapper(holdInput(Right))

	advance(p, tweens, 16*time.Millisecond, mapper)
	assert.Equal(t, Walking, p.State())
	require.Len(t, *events, 1)
	assert.Equal(t, Right, (*events)[0].Dir)

	// held input is not consumed while walking
	advance(p, tweens, 16*time.Millisecond, mapper)
	assert.Len(t, *events, 1)
}

func TestAnimationKey(t *testing.T) {
	assert.Equal(t, "walk-left", AnimationKey(Walking, Left))
	assert.Equal(t, "idle-down", AnimationKey(Idle, Down))
	assert.Equal(t, "idle-up", AnimationKey(Resting, Up))
}
