package game

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// RenderSync receives every visible change the simulation makes.
type RenderSync interface {
	OnGridChanged(col, row int, symbol Symbol)
	OnEntityMoved(x, y float64)
	OnAnimationChanged(key string)
}

// RenderSyncs fans each notification out in order.
type RenderSyncs []RenderSync

func (s RenderSyncs) OnGridChanged(col, row int, symbol Symbol) {
	for _, sync := range s {
		sync.OnGridChanged(col, row, symbol)
	}
}

func (s RenderSyncs) OnEntityMoved(x, y float64) {
	for _, sync := range s {
		sync.OnEntityMoved(x, y)
	}
}

func (s RenderSyncs) OnAnimationChanged(key string) {
	for _, sync := range s {
		sync.OnAnimationChanged(key)
	}
}

type NopRenderSync struct{}

func (NopRenderSync) OnGridChanged(int, int, Symbol) {}
func (NopRenderSync) OnEntityMoved(float64, float64) {}
func (NopRenderSync) OnAnimationChanged(string) {}

// WalkEvent is emitted once when a walk or bump starts.
type WalkEvent struct {
	Dir     Direction
	From    Cell
	To      Cell
	Blocked bool
}

type Options struct {
	Grid          *Grid
	Start         Cell
	Random        Random
	Input         InputSource
	Sync          RenderSync
	Motion        MotionSettings
	DecayInterval time.Duration
	Logger        *log.Logger
}

// GameManager owns the grid, the player, the in-flight tweens and the decay
// process, and advances them together one tick at a time.
type GameManager struct {
	Grid   *Grid
	Player *Player
	Tweens *TweenList
	Decay  *Decay
	Input  *InputMapper

	Ticks     int
	Clock     time.Duration
	Mutations int
	IsRunning bool

	walkListeners []func(WalkEvent)
	logger        *log.Logger
}

func NewGameManager(opts Options) (*GameManager, error) {
	if opts.Grid == nil {
		return nil, fmt.Errorf("game manager: grid is required")
	}
	if opts.Random == nil {
		return nil, fmt.Errorf("game manager: random source is required")
	}
	if _, err := opts.Grid.Get(opts.Start.Col, opts.Start.Row); err != nil {
		return nil, fmt.Errorf("game manager: start cell: %w", err)
	}
	if opts.Motion == (MotionSettings{}) {
		opts.Motion = DefaultMotionSettings()
	}
	if opts.DecayInterval <= 0 {
		opts.DecayInterval = DecayInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sync == nil {
		opts.Sync = NopRenderSync{}
	}

	gm := &GameManager{
		Grid:   opts.Grid,
		Tweens: &TweenList{},
		Input:  NewInputMapper(opts.Input),
		logger: opts.Logger,
	}
	if opts.Grid.IsSolid(opts.Start.Col, opts.Start.Row) {
		gm.logger.Warn("player starts on a solid cell", "col", opts.Start.Col, "row", opts.Start.Row)
	}

	gm.Player = NewPlayer(opts.Start, opts.Grid, gm.Tweens, opts.Sync, opts.Motion, gm.emitWalked)
	gm.Decay = NewDecay(opts.Grid, opts.Random, opts.Sync, opts.DecayInterval, opts.Logger)

	return gm, nil
}

// OnWalked registers fn to run each time a walk or bump starts.
func (gm *GameManager) OnWalked(fn func(WalkEvent)) {
	gm.walkListeners = append(gm.walkListeners, fn)
}

func (gm *GameManager) emitWalked(ev WalkEvent) {
	gm.logger.Debug("walked", "dir", ev.Dir, "from", ev.From, "blocked", ev.Blocked)
	for _, fn := range gm.walkListeners {
		fn(ev)
	}
}

// Tick advances the whole simulation by delta: input, tweens, player, decay.
func (gm *GameManager) Tick(delta time.Duration) {
	gm.Ticks++
	gm.Clock += delta

	gm.Input.Refresh(delta, gm.Player.View())
	gm.Tweens.Update(delta)
	gm.Player.Update(delta, gm.Input)

	if _, mutated := gm.Decay.Update(delta); mutated {
		gm.Mutations++
	}
}

// Step runs fixed frames until total simulated time has passed and returns
// the number of ticks taken.
func (gm *GameManager) Step(total, frame time.Duration) int {
	if frame <= 0 {
		frame = FrameDuration
	}
	ticks := 0
	for elapsed := time.Duration(0); elapsed < total; elapsed += frame {
		gm.Tick(frame)
		ticks++
	}
	return ticks
}

// StartGameLoop ticks the simulation on a wall-clock ticker until ctx is
// cancelled. Each tick receives the real time since the previous one.
func (gm *GameManager) StartGameLoop(ctx context.Context, frame time.Duration) {
	if gm.IsRunning {
		return
	}
	gm.IsRunning = true
	defer func() { gm.IsRunning = false }()

	if frame <= 0 {
		frame = FrameDuration
	}
	gm.logger.Info("Game loop started", "frame", frame)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("Game loop stopped", "ticks", gm.Ticks, "clock", gm.Clock)
			return
		case now := <-ticker.C:
			gm.Tick(now.Sub(last))
			last = now
		}
	}
}
