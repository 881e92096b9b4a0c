package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key value]",
	Short: "Show or set configuration",
	Long: `Show the current configuration, or set one key.

Keys:
  db_path                Path to the subject database
  base_url               Override for the bgm.tv API base URL
  search_case_sensitive  true/false, exact-case local search

Examples:
  acgnx config
  acgnx config db_path ~/media/acgnx.db`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runConfig,
}

// ConfigResponse is the JSON form of the config display.
type ConfigResponse struct {
	Path                string `json:"path"`
	DBPath              string `json:"db_path"`
	BaseURL             string `json:"base_url,omitempty"`
	SearchCaseSensitive bool   `json:"search_case_sensitive"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if len(args) == 0 {
		if jsonOutput {
			outputJSON(ConfigResponse{
				Path:                config.Path(),
				DBPath:              cfg.DatabasePath(),
				BaseURL:             cfg.BaseURL,
				SearchCaseSensitive: cfg.SearchCaseSensitive,
			})
			return nil
		}
		fmt.Printf("config file:           %s\n", config.Path())
		fmt.Printf("db_path:               %s\n", cfg.DatabasePath())
		if cfg.BaseURL != "" {
			fmt.Printf("base_url:              %s\n", cfg.BaseURL)
		}
		fmt.Printf("search_case_sensitive: %t\n", cfg.SearchCaseSensitive)
		return nil
	}

	if len(args) != 2 {
		exitWithError(ExitError, "config set requires a key and a value")
	}

	key, value := args[0], args[1]
	switch key {
	case "db_path":
		cfg.DBPath = config.ExpandTilde(value)
	case "base_url":
		cfg.BaseURL = value
	case "search_case_sensitive":
		on, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "invalid boolean %q for search_case_sensitive", value)
		}
		cfg.SearchCaseSensitive = on
	default:
		exitWithError(ExitError, "unknown config key %q", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if jsonOutput {
		outputJSON(StatusResponse{Status: "updated"})
		return nil
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
