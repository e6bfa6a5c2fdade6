package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Mshel/crumble/internal/game"
	"gopkg.in/yaml.v3"
)

type AudioSettings struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SoundsGlob string  `yaml:"sounds_glob"`
}

type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Settings is everything a run can be tuned with. Zero values in the file
// keep the defaults.
type Settings struct {
	Map     string `yaml:"map"`
	MapFile string `yaml:"map_file"`
	Seed    uint64 `yaml:"seed"`

	Frame         time.Duration `yaml:"frame"`
	WalkDuration  time.Duration `yaml:"walk_duration"`
	BumpDuration  time.Duration `yaml:"bump_duration"`
	RestDuration  time.Duration `yaml:"rest_duration"`
	BumpReach     float64       `yaml:"bump_reach"`
	DecayInterval time.Duration `yaml:"decay_interval"`
	CellWidth     float64       `yaml:"cell_width"`
	CellHeight    float64       `yaml:"cell_height"`
	KeyHold       time.Duration `yaml:"key_hold"`

	Journal         string `yaml:"journal"`
	AutopilotScript string `yaml:"autopilot_script"`

	Audio AudioSettings `yaml:"audio"`
	Log   LogSettings   `yaml:"log"`
}

func Default() Settings {
	return Settings{
		Map:           game.DefaultMapName,
		Frame:         game.FrameDuration,
		WalkDuration:  game.WalkDuration,
		BumpDuration:  game.BumpDuration,
		RestDuration:  game.RestDuration,
		BumpReach:     game.BumpReach,
		DecayInterval: game.DecayInterval,
		CellWidth:     game.CellWidth,
		CellHeight:    game.CellHeight,
		KeyHold:       120 * time.Millisecond,
		Audio: AudioSettings{
			Enabled:    true,
			Volume:     0.4,
			SoundsGlob: "sounds/walk*.wav",
		},
		Log: LogSettings{
			Level: "info",
			File:  "crumble.log",
		},
	}
}

// Load reads a YAML settings file over the defaults. An empty path returns
// the defaults.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, settings.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return settings, nil
}

func (s Settings) Validate() error {
	var errs []error

	if s.MapFile == "" {
		if _, ok := game.Maps[s.Map]; !ok {
			errs = append(errs, fmt.Errorf("map %q is not a built-in map (have %v)", s.Map, game.MapNames()))
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"frame", s.Frame},
		{"walk_duration", s.WalkDuration},
		{"bump_duration", s.BumpDuration},
		{"rest_duration", s.RestDuration},
		{"decay_interval", s.DecayInterval},
		{"key_hold", s.KeyHold},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", d.name, d.value))
		}
	}

	if s.BumpReach <= 0 || s.BumpReach >= 1 {
		errs = append(errs, fmt.Errorf("bump_reach must be between 0 and 1, got %g", s.BumpReach))
	}
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %gx%g", s.CellWidth, s.CellHeight))
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be between 0 and 1, got %g", s.Audio.Volume))
	}

	return errors.Join(errs...)
}

func (s Settings) Motion() game.MotionSettings {
	return game.MotionSettings{
		WalkDuration: s.WalkDuration,
		BumpDuration: s.BumpDuration,
		RestDuration: s.RestDuration,
		BumpReach:    s.BumpReach,
		CellWidth:    s.CellWidth,
		CellHeight:   s.CellHeight,
	}
}

// LoadGrid loads MapFile when set, otherwise the built-in Map.
func (s Settings) LoadGrid() (*game.Grid, error) {
	if s.MapFile != "" {
		return game.LoadMapFile(s.MapFile)
	}
	return game.LoadBuiltinMap(s.Map)
}

// NewRandom seeds from Seed, or from the clock when Seed is zero.
func (s Settings) NewRandom() game.Random {
	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return game.NewRandom(seed)
}
