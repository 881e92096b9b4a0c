package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a subject from the catalog",
	Long: `Remove one subject from the local catalog.

Example:
  acgnx remove 253`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
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
		exitOnError(err, "removing subject")
	}

	if err := store.DeleteSubjects(ctx, *s); err != nil {
		exitOnError(err, "removing subject")
	}

	if jsonOutput {
		outputJSON(StatusResponse{Status: "removed", ID: id})
		return nil
	}
	fmt.Printf("Removed subject %d (%s)\n", id, s.Name)
	return nil
}
