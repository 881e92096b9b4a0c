// Package main provides the acgnx CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/xtz206/acgnx/internal/bangumi"
	"github.com/xtz206/acgnx/internal/catalog"
	"github.com/xtz206/acgnx/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// jsonOutput controls whether to emit JSON instead of tables
var jsonOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like unknown flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "acgnx",
	Short: "Media subject catalog CLI",
	Long: `acgnx is a catalog manager for media subjects (anime, books, games,
music, real events) backed by the bgm.tv API and a local SQLite cache.

Core features:
  - Fetch subjects by ID from bgm.tv into the local catalog
  - List and view cached subjects
  - Refresh cached subjects from the remote source
  - Search by keyword, online or against the local cache

Output is human-readable tables by default; use --json for machine output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output instead of tables")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenStore opens the subject store, exits on error.
// The caller is responsible for calling Close() on the returned store.
func mustOpenStore(cfg *config.Config) *catalog.Store {
	path := cfg.DatabasePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitConfigError, "creating database directory: %v", err)
	}

	var opts []catalog.StoreOption
	if cfg.SearchCaseSensitive {
		opts = append(opts, catalog.WithCaseSensitiveSearch(true))
	}

	store, err := catalog.Open(path, opts...)
	if err != nil {
		exitWithError(ExitError, "opening catalog: %v", err)
	}
	return store
}

// newClient builds the bgm.tv client, picking up an optional access token
// from the environment or a .env file.
func newClient(cfg *config.Config) *bangumi.Client {
	_ = godotenv.Load()

	var opts []bangumi.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, bangumi.WithBaseURL(cfg.BaseURL))
	}
	return bangumi.NewClient(opts...)
}
