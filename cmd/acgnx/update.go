package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/subject"
	"github.com/xtz206/acgnx/internal/updater"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Refresh cached subjects from bgm.tv",
	Long: `Refresh cached subjects from the remote source. With no argument
every cached subject is refreshed; with an ID just that subject.

The whole batch is written in one transaction: if any subject fails to
refresh or write, nothing changes.

Examples:
  acgnx update
  acgnx update 253`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	ctx := cmd.Context()

	var seeds []subject.Subject
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			exitWithError(ExitError, "invalid subject id %q", args[0])
		}
		s, err := store.FetchSubject(ctx, id)
		if err != nil {
			exitOnError(err, "updating subject")
		}
		seeds = []subject.Subject{*s}
	} else {
		var err error
		seeds, err = store.FetchAll(ctx)
		if err != nil {
			exitOnError(err, "updating subjects")
		}
	}

	u := updater.New(newClient(cfg), seeds)
	if err := u.RefreshAll(ctx); err != nil {
		exitOnError(err, "refreshing subjects")
	}

	if err := store.UpdateSubjects(ctx, u.Subjects()...); err != nil {
		exitOnError(err, "writing refreshed subjects")
	}

	if jsonOutput {
		outputJSON(u.Subjects())
		return nil
	}
	printSubjectTable(u.Subjects())
	fmt.Printf("Updated %d subject(s)\n", len(u.Subjects()))
	return nil
}
