package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/playlake/playlake/internal/ioconfig"
	"github.com/playlake/playlake/internal/iofs"
	"github.com/playlake/playlake/internal/iologger"
	"github.com/playlake/playlake/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
	homeDir string
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "playlake",
		Short: "playlake builds a star-schema warehouse from raw JSON logs",
		Long: `playlake transforms two raw JSON-lines datasets, a song catalog and a
user listening log, into five analytical tables written as partitioned
Snappy Parquet:

  songs, artists, users, time  (dimensions)
  songplays                    (fact)

Input and output live in an object store; the "fs" backend uses a local
directory, "s3" and "minio" talk to remote stores.

Configuration precedence (highest to lowest):
  1. CLI flags (--input, --output, etc.)
  2. Environment variables (PLAYLAKE_*)
  3. Config file (~/.config/playlake/config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via PLAYLAKE_* environment variables.
  Nested fields use underscores (storage.bucket → PLAYLAKE_STORAGE_BUCKET).

  Examples:
    PLAYLAKE_STORAGE_BACKEND        Storage backend (fs/s3/minio)
    PLAYLAKE_STORAGE_BUCKET         Bucket for s3/minio backends
    PLAYLAKE_INPUT_PREFIX           Key prefix of the raw datasets
    PLAYLAKE_OUTPUT_PREFIX          Key prefix of the published tables
    PLAYLAKE_TRANSFORM_TIMEZONE     Calendar timezone (default UTC)
    PLAYLAKE_LOG_LEVEL              Log level (debug/info/warn/error)

  See 'go doc github.com/playlake/playlake/pkg/config' for complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot find home directory: %w", err)
			}

			if err := iofs.EnsureDirs(homeDir); err != nil {
				return err
			}
			if err := iofs.EnsureConfigFile(homeDir); err != nil {
				return err
			}
			if err := iofs.EnsureDatasetsFile(homeDir); err != nil {
				return err
			}

			result, err := ioconfig.Load(cfgFile, homeDir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			err = iologger.Init(config.LogDir(homeDir), cfg.Log, false)
			if err != nil {
				return err
			}

			if result.Source == "file" {
				fmt.Printf("Using config from: %s\n", result.SourcePath)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/playlake/config.yaml)")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for playlake")

	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getTablesCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}
