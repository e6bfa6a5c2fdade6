package ui

import (
	"time"

	"github.com/charmbracelet/log"
)

const animationFrameDuration = 200 * time.Millisecond

type Animation struct {
	Frames        []string
	FrameDuration time.Duration
}

// DefaultAnimations has an idle and a walk drawing per facing. Walk cycles
// step, stand, other step, stand.
func DefaultAnimations() map[string]Animation {
	heads := map[string][3]string{
		"up":    {"▲▲", "△▲", "▲△"},
		"down":  {"▼▼", "▽▼", "▼▽"},
		"left":  {"◀◀", "◁◀", "◀◁"},
		"right": {"▶▶", "▷▶", "▶▷"},
	}

	set := make(map[string]Animation, len(heads)*2)
	for dir, h := range heads {
		set["idle-"+dir] = Animation{Frames: []string{h[0]}, FrameDuration: animationFrameDuration}
		set["walk-"+dir] = Animation{Frames: []string{h[1], h[0], h[2], h[0]}, FrameDuration: animationFrameDuration}
	}
	return set
}

// Animations plays one looping animation at a time.
type Animations struct {
	set     map[string]Animation
	current string
	elapsed time.Duration
	logger  *log.Logger
}

func NewAnimations(set map[string]Animation, logger *log.Logger) *Animations {
	if logger == nil {
		logger = log.Default()
	}
	return &Animations{set: set, logger: logger}
}

// Play switches to key. An unknown key is logged and the current drawing
// stays on screen.
func (a *Animations) Play(key string) bool {
	if _, ok := a.set[key]; !ok {
		a.logger.Warn("couldn't find " + key)
		return false
	}
	if key != a.current {
		a.current = key
		a.elapsed = 0
	}
	return true
}

func (a *Animations) Current() string {
	return a.current
}

func (a *Animations) Advance(delta time.Duration) {
	a.elapsed += delta
}

func (a *Animations) Frame() string {
	anim, ok := a.set[a.current]
	if !ok || len(anim.Frames) == 0 {
		return "@@"
	}
	if anim.FrameDuration <= 0 {
		return anim.Frames[0]
	}
	index := int(a.elapsed/anim.FrameDuration) % len(anim.Frames)
	return anim.Frames[index]
}
