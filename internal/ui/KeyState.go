package ui

import (
	"time"

	"github.com/Mshel/crumble/internal/game"
)

// KeyState turns terminal key presses into held directions. Terminals never
// report releases, so a press counts as held for a short window and auto
// repeat keeps renewing it.
type KeyState struct {
	hold      time.Duration
	remaining map[game.Direction]time.Duration
	fresh     map[game.Direction]bool
}

func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{
		hold:      hold,
		remaining: make(map[game.Direction]time.Duration),
		fresh:     make(map[game.Direction]bool),
	}
}

func (k *KeyState) Press(d game.Direction) {
	k.remaining[d] = k.hold
	k.fresh[d] = true
}

// Refresh ages held keys. A press is always visible for at least the tick
// right after it arrived.
func (k *KeyState) Refresh(delta time.Duration, _ game.PlayerView) {
	for d, left := range k.remaining {
		if k.fresh[d] {
			delete(k.fresh, d)
			continue
		}
		left -= delta
		if left <= 0 {
			delete(k.remaining, d)
			continue
		}
		k.remaining[d] = left
	}
}

func (k *KeyState) IsDirectionActive(d game.Direction) bool {
	return k.remaining[d] > 0
}
