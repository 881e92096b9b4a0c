package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/subject"
	"github.com/xtz206/acgnx/internal/updater"
)

func init() {
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View a cached subject in detail",
	Long: `View one subject from the local catalog.

Example:
  acgnx view 253`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		exitWithError(ExitError, "invalid subject id %q", args[0])
	}

	cfg := mustLoadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	ctx := cmd.Context()

	s, err := store.FetchSubject(ctx, id)
	if err != nil {
		exitOnError(err, "viewing subject")
	}

	// Pass-through refresh: viewing never re-fetches.
	u := updater.New(nil, []subject.Subject{*s})
	if err := u.RefreshAll(ctx); err != nil {
		exitOnError(err, "viewing subject")
	}

	if jsonOutput {
		outputJSON(u.Subjects()[0])
		return nil
	}
	printSubjectDetail(u.Subjects()[0])
	return nil
}
