package audio

import (
	"path/filepath"
	"testing"

	"github.com/Mshel/crumble/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizedFallback(t *testing.T) {
	sm := NewSoundManager(game.NewRandom(1), 0.4, nil)

	n, err := sm.LoadWalkSounds(filepath.Join(t.TempDir(), "walk*.wav"))
	require.NoError(t, err)
	assert.Equal(t, synthesizedVariety, n)
	assert.Equal(t, n, sm.WalkSoundCount())
}

func TestBadPattern(t *testing.T) {
	sm := NewSoundManager(game.NewRandom(1), 0.4, nil)

	_, err := sm.LoadWalkSounds("[")
	assert.Error(t, err)
}

func TestUninitializedIsSilentNoop(t *testing.T) {
	sm := NewSoundManager(game.NewRandom(1), 0.4, nil)
	_, err := sm.LoadWalkSounds(filepath.Join(t.TempDir(), "none*.wav"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		sm.PlayWalk()
		sm.OnWalked(game.WalkEvent{Dir: game.Right})
		sm.Cleanup()
	})
}

func TestMute(t *testing.T) {
	sm := NewSoundManager(game.NewRandom(1), 0.4, nil)
	assert.False(t, sm.Muted())

	sm.SetMuted(true)
	assert.True(t, sm.Muted())
}

func TestSynthesizedStepShape(t *testing.T) {
	buffer := synthesizeStep(1, 140)
	require.Equal(t, sampleRate.N(stepLength), buffer.Len())

	samples := make([][2]float64, buffer.Len())
	n, ok := buffer.Streamer(0, buffer.Len()).Stream(samples)
	require.True(t, ok)
	require.Equal(t, buffer.Len(), n)

	var head, tail float64
	quarter := n / 4
	for i := 0; i < quarter; i++ {
		head += samples[i][0] * samples[i][0]
		tail += samples[n-1-i][0] * samples[n-1-i][0]
	}
	assert.Greater(t, head, tail, "a footstep fades out")
}
