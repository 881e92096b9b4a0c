package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/updater"
)

var (
	searchOnline bool
	searchStore  bool
)

func init() {
	searchCmd.Flags().BoolVar(&searchOnline, "online", false, "Search bgm.tv (default)")
	searchCmd.Flags().BoolVar(&searchStore, "store", false, "Search the local catalog instead")
	searchCmd.MarkFlagsMutuallyExclusive("online", "store")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search subjects by keyword",
	Long: `Search subjects by keyword. Searches bgm.tv by default; --store
searches the local catalog instead. Remote results are capped at the
provider's page size and ordered by relevance.

Examples:
  acgnx search "Cowboy Bebop"
  acgnx search Bebop --store`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	ctx := cmd.Context()

	var source updater.Source
	if searchStore {
		store := mustOpenStore(cfg)
		defer store.Close()
		source = store
	} else {
		source = newClient(cfg)
	}

	u := updater.New(source, nil)
	if err := u.Search(ctx, args[0]); err != nil {
		exitOnError(err, "searching subjects")
	}

	subjects := u.Subjects()
	if jsonOutput {
		outputJSON(subjects)
		return nil
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects found")
		return nil
	}
	printSubjectTable(subjects)
	return nil
}
