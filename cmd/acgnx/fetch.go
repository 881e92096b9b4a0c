package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/subject"
	"github.com/xtz206/acgnx/internal/updater"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Fetch a subject from bgm.tv into the catalog",
	Long: `Fetch one subject by ID from bgm.tv and insert it into the local
catalog, replacing any cached version.

Example:
  acgnx fetch 253`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		exitWithError(ExitError, "invalid subject id %q", args[0])
	}

	cfg := mustLoadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	ctx := cmd.Context()

	u := updater.New(newClient(cfg), []subject.Subject{*subject.New(id)})
	if err := u.RefreshAll(ctx); err != nil {
		exitOnError(err, "fetching subject")
	}

	if err := store.InsertSubjects(ctx, u.Subjects()...); err != nil {
		exitOnError(err, "caching subject")
	}

	if jsonOutput {
		outputJSON(u.Subjects()[0])
		return nil
	}
	printSubjectTable(u.Subjects())
	fmt.Printf("Fetched subject %d into the catalog\n", id)
	return nil
}
