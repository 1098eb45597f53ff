package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/playlake/playlake/internal/ioconfig"
	"github.com/playlake/playlake/internal/iorun"
	"github.com/playlake/playlake/internal/iostorage"
	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/etl"
	"github.com/playlake/playlake/pkg/schema"
)

func getRunCmd() *cobra.Command {
	var (
		tablesFlag  string
		inputFlag   string
		outputFlag  string
		backendFlag string
		rootFlag    string
		jobsFlag    int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs the pipeline and publishes the star-schema tables",
		Long: `Runs the complete pipeline: reads the raw song catalog and listening
log, derives the star-schema tables and publishes them as partitioned
Snappy Parquet under the output prefix.

Each table becomes readable only when its _SUCCESS marker is written,
so a failed run never leaves a partially published table behind.

Examples:
  playlake run
  playlake run --tables songs,artists
  playlake run --input raw --output warehouse --jobs 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()

			var opts []config.Option
			if inputFlag != "" {
				opts = append(opts, config.OptInputPrefix(inputFlag))
			}
			if outputFlag != "" {
				opts = append(opts, config.OptOutputPrefix(outputFlag))
			}
			if backendFlag != "" {
				opts = append(opts, config.OptStorageBackend(backendFlag))
			}
			if rootFlag != "" {
				opts = append(opts, config.OptStorageRoot(rootFlag))
			}
			if jobsFlag > 0 {
				opts = append(opts, config.OptJobsNumber(jobsFlag))
			}
			cfg.Update(opts)

			tables, err := parseTables(tablesFlag)
			if err != nil {
				return err
			}

			ds, err := ioconfig.LoadDatasets(config.DatasetsFilePath(homeDir))
			if err != nil {
				return err
			}

			store, err := iostorage.New(cfg)
			if err != nil {
				return err
			}

			runner := iorun.New(cfg, ds, store)
			summary, err := runner.Run(context.Background(), tables)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tablesFlag, "tables", "t", "",
		"comma-separated tables to publish (default: all)")
	cmd.Flags().StringVarP(&inputFlag, "input", "i", "",
		"key prefix of the raw datasets")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "",
		"key prefix of the published tables")
	cmd.Flags().StringVar(&backendFlag, "backend", "",
		"storage backend: fs, s3 or minio")
	cmd.Flags().StringVar(&rootFlag, "root", "",
		"base directory for the fs backend")
	cmd.Flags().IntVarP(&jobsFlag, "jobs", "j", 0,
		"number of concurrent workers")

	return cmd
}

// parseTables validates a comma-separated table selection.
func parseTables(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var res []string
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !schema.IsTable(name) {
			return nil, fmt.Errorf(
				"unknown table %q (valid: %s)",
				name, strings.Join(schema.TableNames(), ", "),
			)
		}
		res = append(res, name)
	}
	return res, nil
}

func printSummary(s *etl.Summary) {
	fmt.Printf("\nRun %s finished in %s\n\n",
		s.RunID, s.Elapsed.Round(time.Millisecond))

	for _, src := range s.Sources {
		fmt.Printf("  %-10s %s records from %s files (%d malformed)\n",
			src.Dataset,
			humanize.Comma(int64(src.Records)),
			humanize.Comma(int64(src.Files)),
			src.Malformed,
		)
	}

	fmt.Printf("\n  plays: %s, matched to catalog: %s, dropped: %d\n\n",
		humanize.Comma(int64(s.Transform.PlayEvents)),
		humanize.Comma(int64(s.Transform.MatchedPlays)),
		s.Dropped,
	)

	for _, t := range s.Tables {
		fmt.Printf("  %-10s %s rows in %d partition(s)\n",
			t.Table,
			humanize.Comma(int64(t.Rows)),
			t.Partitions,
		)
	}
	fmt.Println()
}
