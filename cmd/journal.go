package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Mshel/crumble/internal/game"
	"github.com/Mshel/crumble/internal/ui"
	"github.com/urfave/cli/v3"
)

func journalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "print what earlier runs recorded",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "entries to show"},
			&cli.StringFlag{Name: "run", Usage: "only show this run id"},
			&cli.BoolFlag{Name: "runs", Usage: "list runs instead of entries"},
		},
		Action: showJournal,
	}
}

func showJournal(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if settings.Journal == "" {
		return errors.New("no journal configured, pass --journal <file>")
	}
	if _, err := os.Stat(settings.Journal); err != nil {
		return fmt.Errorf("journal '%s': %w", settings.Journal, err)
	}

	logger := newLogger(os.Stderr, settings)
	journal, err := game.OpenJournal(settings.Journal, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	limit := int(cmd.Int("limit"))

	if cmd.Bool("runs") {
		runs, err := journal.Runs(limit)
		if err != nil {
			return err
		}
		fmt.Println(ui.RenderRunsTable(runs))
		return nil
	}

	entries, err := journal.Entries(cmd.String("run"), limit, 0)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Nothing recorded yet.")
		return nil
	}
	fmt.Println(ui.RenderJournalTable(entries))
	return nil
}
