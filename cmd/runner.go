package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/crumble/internal/audio"
	"github.com/Mshel/crumble/internal/config"
	"github.com/Mshel/crumble/internal/game"
	"github.com/Mshel/crumble/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Error loading .env file", "error", err)
	}

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Error("crumble failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "crumble",
		Usage: "walk a tile map while it decays under your feet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML settings file",
				Sources: cli.EnvVars("CRUMBLE_CONFIG"),
			},
			&cli.StringFlag{Name: "map", Usage: "built-in map name"},
			&cli.StringFlag{Name: "map-file", Usage: "load the map from a text file"},
			&cli.IntFlag{Name: "seed", Usage: "random seed, 0 for the clock"},
			&cli.StringFlag{Name: "journal", Usage: "sqlite file to record walks and decay into"},
			&cli.StringFlag{Name: "log-file", Usage: "where the interactive game writes its log"},
			&cli.BoolFlag{Name: "debug", Usage: "log at debug level"},
			&cli.BoolFlag{Name: "mute", Usage: "disable walk sounds"},
		},
		Action: play,
		Commands: []*cli.Command{
			simulateCommand(),
			journalCommand(),
		},
	}
}

// loadSettings reads the config file and applies command line overrides.
func loadSettings(cmd *cli.Command) (config.Settings, error) {
	settings, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Settings{}, err
	}

	if cmd.IsSet("map") {
		settings.Map = cmd.String("map")
	}
	if cmd.IsSet("map-file") {
		settings.MapFile = cmd.String("map-file")
	}
	if cmd.IsSet("seed") {
		settings.Seed = uint64(cmd.Int("seed"))
	}
	if cmd.IsSet("journal") {
		settings.Journal = cmd.String("journal")
	}
	if cmd.IsSet("log-file") {
		settings.Log.File = cmd.String("log-file")
	}
	if cmd.Bool("debug") {
		settings.Log.Level = "debug"
	}
	if cmd.Bool("mute") {
		settings.Audio.Enabled = false
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func newLogger(w io.Writer, settings config.Settings) *log.Logger {
	level, err := log.ParseLevel(settings.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

func openJournal(settings config.Settings, logger *log.Logger) (*game.Journal, error) {
	if settings.Journal == "" {
		return nil, nil
	}
	journal, err := game.OpenJournal(settings.Journal, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Journal opened", "path", settings.Journal, "run", journal.RunID)
	return journal, nil
}

// newSound opens the speaker and loads the walk sounds. Any failure leaves
// the game silent rather than stopping it.
func newSound(settings config.Settings, logger *log.Logger) *audio.SoundManager {
	if !settings.Audio.Enabled {
		return nil
	}

	sound := audio.NewSoundManager(settings.NewRandom(), settings.Audio.Volume, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("Audio unavailable, continuing without sound", "error", err)
		return nil
	}
	if _, err := sound.LoadWalkSounds(settings.Audio.SoundsGlob); err != nil {
		logger.Warn("Could not load walk sounds", "error", err)
	}
	return sound
}

// play runs the interactive terminal game. The TUI owns the terminal, so
// logs go to a file.
func play(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file '%s': %w", settings.Log.File, err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, settings)

	journal, err := openJournal(settings, logger)
	if err != nil {
		return err
	}
	if journal != nil {
		defer journal.Close()
	}

	sound := newSound(settings, logger)
	if sound != nil {
		defer sound.Cleanup()
	}

	session := ui.Session{
		Settings: settings,
		Sound:    sound,
		Journal:  journal,
		Logger:   logger,
	}

	p := tea.NewProgram(ui.NewControllerModel(session, 0, 0), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
