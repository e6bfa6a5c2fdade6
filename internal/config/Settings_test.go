package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mshel/crumble/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crumble.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, game.DefaultMapName, settings.Map)
	assert.Equal(t, 400*time.Millisecond, settings.WalkDuration)
	assert.Equal(t, 250*time.Millisecond, settings.DecayInterval)
	assert.Equal(t, 0.4, settings.Audio.Volume)
	assert.Equal(t, game.DefaultMotionSettings(), settings.Motion())
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
map: corridors
seed: 99
walk_duration: 300ms
decay_interval: 1s
journal: runs.db
audio:
  volume: 0.8
log:
  level: debug
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "corridors", settings.Map)
	assert.Equal(t, uint64(99), settings.Seed)
	assert.Equal(t, 300*time.Millisecond, settings.WalkDuration)
	assert.Equal(t, time.Second, settings.DecayInterval)
	assert.Equal(t, "runs.db", settings.Journal)
	assert.Equal(t, 0.8, settings.Audio.Volume)
	assert.Equal(t, "debug", settings.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, 100*time.Millisecond, settings.BumpDuration)
	assert.True(t, settings.Audio.Enabled)
	assert.Equal(t, "crumble.log", settings.Log.File)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
map: nowhere
bump_reach: 1.5
audio:
  volume: 2
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "nowhere")
	assert.ErrorContains(t, err, "bump_reach")
	assert.ErrorContains(t, err, "audio.volume")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "map: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidateDurations(t *testing.T) {
	settings := Default()
	settings.RestDuration = 0
	settings.Frame = -time.Millisecond

	err := settings.Validate()
	assert.ErrorContains(t, err, "rest_duration")
	assert.ErrorContains(t, err, "frame")
}

func TestLoadGrid(t *testing.T) {
	settings := Default()
	settings.Map = "courtyard"
	grid, err := settings.LoadGrid()
	require.NoError(t, err)
	assert.Positive(t, grid.Rows())

	mapPath := filepath.Join(t.TempDir(), "tiny.txt")
	require.NoError(t, os.WriteFile(mapPath, []byte("000\n010\n000\n"), 0o644))
	settings.MapFile = mapPath
	require.NoError(t, settings.Validate())

	grid, err = settings.LoadGrid()
	require.NoError(t, err)
	assert.Equal(t, 3, grid.Cols())
}

func TestNewRandomIsSeeded(t *testing.T) {
	settings := Default()
	settings.Seed = 5

	a, b := settings.NewRandom(), settings.NewRandom()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
