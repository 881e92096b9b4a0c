package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/subject"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List cached subjects",
	Long: `List subjects from the local catalog, optionally filtered by a
name/alias substring.

Examples:
  acgnx list
  acgnx list Gundam`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	store := mustOpenStore(cfg)
	defer store.Close()

	ctx := cmd.Context()

	var subjects []subject.Subject
	var err error
	if len(args) == 1 {
		subjects, err = store.SearchSubjects(ctx, args[0])
	} else {
		subjects, err = store.FetchAll(ctx)
	}
	if err != nil {
		exitOnError(err, "listing subjects")
	}

	if jsonOutput {
		outputJSON(subjects)
		return nil
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects in catalog")
		return nil
	}
	printSubjectTable(subjects)
	return nil
}
