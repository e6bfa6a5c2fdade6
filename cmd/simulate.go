package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/crumble/internal/game"
	"github.com/urfave/cli/v3"
)

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "run the world headless with a scripted walker",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "for", Value: 30 * time.Second, Usage: "simulated time to run"},
			&cli.BoolFlag{Name: "realtime", Usage: "tick on the wall clock instead of as fast as possible"},
			&cli.StringFlag{Name: "script", Usage: "Lua autopilot script, defaults to a wall follower"},
		},
		Action: simulate,
	}
}

type simulationTally struct {
	walks int
	bumps int
}

func simulate(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("script") {
		settings.AutopilotScript = cmd.String("script")
	}
	logger := newLogger(os.Stderr, settings)

	grid, err := settings.LoadGrid()
	if err != nil {
		return err
	}

	var autopilot *game.Autopilot
	if settings.AutopilotScript != "" {
		autopilot, err = game.LoadAutopilotFile(settings.AutopilotScript, grid, logger)
	} else {
		autopilot, err = game.NewAutopilot(game.DefaultAutopilotScript, grid, logger)
	}
	if err != nil {
		return err
	}
	defer autopilot.Close()

	journal, err := openJournal(settings, logger)
	if err != nil {
		return err
	}

	var sync game.RenderSync = game.NopRenderSync{}
	if journal != nil {
		defer journal.Close()
		sync = journal
	}

	gm, err := game.NewGameManager(game.Options{
		Grid:          grid,
		Start:         game.StartCell,
		Random:        settings.NewRandom(),
		Input:         autopilot,
		Sync:          sync,
		Motion:        settings.Motion(),
		DecayInterval: settings.DecayInterval,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	autopilot.Attach(gm.Player)

	tally := &simulationTally{}
	gm.OnWalked(func(ev game.WalkEvent) {
		if ev.Blocked {
			tally.bumps++
		} else {
			tally.walks++
		}
	})
	if journal != nil {
		gm.OnWalked(journal.RecordWalk)
	}

	duration := cmd.Duration("for")
	logger.Info("Simulation starting", "for", duration, "realtime", cmd.Bool("realtime"), "grid", fmt.Sprintf("%dx%d", grid.Cols(), grid.Rows()))

	if cmd.Bool("realtime") {
		if sound := newSound(settings, logger); sound != nil {
			defer sound.Cleanup()
			gm.OnWalked(sound.OnWalked)
		}

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		runCtx, cancel := context.WithTimeout(runCtx, duration)
		defer cancel()

		gm.StartGameLoop(runCtx, settings.Frame)
	} else {
		gm.Step(duration, settings.Frame)
	}

	reachable, walkable := gm.ReachableArea()
	logger.Info("Simulation finished",
		"ticks", gm.Ticks,
		"clock", gm.Clock,
		"walks", tally.walks,
		"bumps", tally.bumps,
		"mutations", gm.Mutations,
		"reachable", fmt.Sprintf("%d/%d", reachable, walkable),
		"cell", fmt.Sprintf("%d,%d", gm.Player.Cell.Col, gm.Player.Cell.Row),
	)
	fmt.Println(gm.Grid.String())
	return nil
}
