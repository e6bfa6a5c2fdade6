package game

import (
	"fmt"
	"time"
)

type MotionState int

const (
	Idle MotionState = iota
	Walking
	Resting
)

func (s MotionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case Resting:
		return "resting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type MotionSettings struct {
	WalkDuration time.Duration
	BumpDuration time.Duration
	RestDuration time.Duration
	BumpReach    float64
	CellWidth    float64
	CellHeight   float64
}

func DefaultMotionSettings() MotionSettings {
	return MotionSettings{
		WalkDuration: WalkDuration,
		BumpDuration: BumpDuration,
		RestDuration: RestDuration,
		BumpReach:    BumpReach,
		CellWidth:    CellWidth,
		CellHeight:   CellHeight,
	}
}

// SolidityQuery is the read-only view of the grid the player walks on.
type SolidityQuery interface {
	IsSolid(col, row int) bool
}

// Commander yields at most one walk command per tick.
type Commander interface {
	Poll() (Direction, bool)
}

// Player is the single movable entity. Cell is authoritative; Pos only
// differs from it while a tween is running.
type Player struct {
	Cell   Cell
	Pos    Vec
	PixelX float64
	PixelY float64
	Facing Direction

	state     MotionState
	restLeft  time.Duration
	animation string

	grid     SolidityQuery
	tweens   *TweenList
	sync     RenderSync
	settings MotionSettings
	onWalked func(WalkEvent)
}

func NewPlayer(start Cell, grid SolidityQuery, tweens *TweenList, sync RenderSync, settings MotionSettings, onWalked func(WalkEvent)) *Player {
	if sync == nil {
		sync = NopRenderSync{}
	}
	p := &Player{
		Cell:     start,
		Pos:      Vec{X: float64(start.Col), Y: float64(start.Row)},
		Facing:   Right,
		state:    Idle,
		grid:     grid,
		tweens:   tweens,
		sync:     sync,
		settings: settings,
		onWalked: onWalked,
	}
	p.updatePos()
	p.updateAnimation()
	return p
}

func (p *Player) State() MotionState { return p.state }

func (p *Player) RestLeft() time.Duration { return p.restLeft }

func (p *Player) Animation() string { return p.animation }

func (p *Player) View() PlayerView {
	return PlayerView{Cell: p.Cell, Facing: p.Facing, State: p.state}
}

// AnimationKey names the drawing for a state and facing, e.g. "walk-left".
func AnimationKey(s MotionState, d Direction) string {
	if s == Walking {
		return "walk-" + d.String()
	}
	return "idle-" + d.String()
}

// Update advances the state machine by one tick. Tweens are advanced
// separately by the owning loop before this is called.
func (p *Player) Update(delta time.Duration, input Commander) {
	switch p.state {
	case Walking:
		// the active tween finishes the walk
	case Resting:
		p.restLeft -= delta
		if p.restLeft <= 0 {
			p.restLeft = 0
			p.setState(Idle)
		}
	case Idle:
		if input == nil {
			return
		}
		if dir, ok := input.Poll(); ok {
			p.Walk(dir)
		}
	}
}

// Walk starts a move or a bump toward dir. It does nothing unless the player
// is Idle. Facing changes even when the target turns out to be solid.
func (p *Player) Walk(dir Direction) bool {
	if p.state != Idle {
		return false
	}

	p.Facing = dir
	origin := p.Cell
	target := origin.Step(dir)
	event := WalkEvent{Dir: dir, From: origin, To: target}

	if p.grid.IsSolid(target.Col, target.Row) {
		dx, dy := dir.Delta()
		far := Vec{
			X: p.Pos.X + p.settings.BumpReach*float64(dx),
			Y: p.Pos.Y + p.settings.BumpReach*float64(dy),
		}
		near := Vec{X: float64(origin.Col), Y: float64(origin.Row)}

		forth := NewTween(&p.Pos, far, p.settings.BumpDuration).OnUpdate(p.updatePos)
		back := NewTween(&p.Pos, near, p.settings.BumpDuration).
			OnUpdate(p.updatePos).
			OnComplete(func() {
				p.restLeft = p.settings.RestDuration
				p.setState(Resting)
			})

		p.setState(Walking)
		p.tweens.Start(forth.Chain(back))

		event.Blocked = true
		p.emitWalked(event)
		return true
	}

	p.setState(Walking)
	p.tweens.Start(NewTween(&p.Pos, Vec{X: float64(target.Col), Y: float64(target.Row)}, p.settings.WalkDuration).
		OnUpdate(p.updatePos).
		OnComplete(func() {
			p.Cell = target
			p.setState(Idle)
		}))

	p.emitWalked(event)
	return true
}

func (p *Player) setState(s MotionState) {
	p.state = s
	p.updateAnimation()
}

func (p *Player) emitWalked(ev WalkEvent) {
	if p.onWalked != nil {
		p.onWalked(ev)
	}
}

func (p *Player) updatePos() {
	p.PixelX = (0.5 + p.Pos.X) * p.settings.CellWidth
	p.PixelY = (0.5 + p.Pos.Y) * p.settings.CellHeight
	p.sync.OnEntityMoved(p.Pos.X, p.Pos.Y)
}

func (p *Player) updateAnimation() {
	key := AnimationKey(p.state, p.Facing)
	if key == p.animation {
		return
	}
	p.animation = key
	p.sync.OnAnimationChanged(key)
}
