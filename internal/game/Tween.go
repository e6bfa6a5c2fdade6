package game

import "time"

// Vec is a continuous grid position, in cells.
type Vec struct {
	X, Y float64
}

func (v Vec) lerp(to Vec, t float64) Vec {
	return Vec{X: v.X + (to.X-v.X)*t, Y: v.Y + (to.Y-v.Y)*t}
}

// Tween moves *target linearly to a fixed end over a fixed duration. The
// start value is captured when the tween is started, so a chained tween
// begins wherever its predecessor left the target.
type Tween struct {
	target   *Vec
	from     Vec
	to       Vec
	duration time.Duration
	elapsed  time.Duration

	onUpdate   func()
	onComplete func()
	next       *Tween
}

func NewTween(target *Vec, to Vec, duration time.Duration) *Tween {
	return &Tween{target: target, to: to, duration: duration}
}

func (tw *Tween) OnUpdate(fn func()) *Tween {
	tw.onUpdate = fn
	return tw
}

func (tw *Tween) OnComplete(fn func()) *Tween {
	tw.onComplete = fn
	return tw
}

// Chain starts next once tw completes.
func (tw *Tween) Chain(next *Tween) *Tween {
	tw.next = next
	return tw
}

func (tw *Tween) start() {
	tw.from = *tw.target
	tw.elapsed = 0
}

// advance reports whether the tween finished during this step.
func (tw *Tween) advance(delta time.Duration) bool {
	tw.elapsed += delta
	if tw.duration <= 0 || tw.elapsed >= tw.duration {
		*tw.target = tw.to
	} else {
		*tw.target = tw.from.lerp(tw.to, float64(tw.elapsed)/float64(tw.duration))
	}

	if tw.onUpdate != nil {
		tw.onUpdate()
	}

	if tw.duration > 0 && tw.elapsed < tw.duration {
		return false
	}
	if tw.onComplete != nil {
		tw.onComplete()
	}
	return true
}

// TweenList is the set of in-flight tweens owned by the simulation loop.
type TweenList struct {
	active []*Tween
}

// Start captures the tween's start value and schedules it for the next Update.
func (l *TweenList) Start(tw *Tween) {
	tw.start()
	l.active = append(l.active, tw)
}

// Update advances every active tween by delta. Chained tweens that become
// active here get their first step on the following Update.
func (l *TweenList) Update(delta time.Duration) {
	current := l.active
	l.active = nil

	var keep []*Tween
	for _, tw := range current {
		if !tw.advance(delta) {
			keep = append(keep, tw)
			continue
		}
		if tw.next != nil {
			tw.next.start()
			keep = append(keep, tw.next)
		}
	}

	// Tweens started from callbacks during this update land in l.active.
	l.active = append(keep, l.active...)
}

func (l *TweenList) Len() int {
	return len(l.active)
}
