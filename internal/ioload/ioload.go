// Package ioload writes the derived tables as partitioned Snappy
// Parquet into the object store.
//
// Each table is staged under the local cache first and published with a
// _SUCCESS marker protocol: the old marker is removed before any object
// changes, the new one is written only after every part file landed.
// Consumers that gate on the marker never observe a half-written table.
package ioload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/etl"
	"github.com/playlake/playlake/pkg/schema"
	"github.com/playlake/playlake/pkg/storage"
)

// SuccessMarker is the object that makes a published table visible.
const SuccessMarker = "_SUCCESS"

// hiveNullPartition is the directory name for a null partition value,
// matching the convention of hive-compatible query engines.
const hiveNullPartition = "__HIVE_DEFAULT_PARTITION__"

type loader struct {
	cfg   *config.Config
	store storage.ObjectStore
	runID string
}

// New creates a Loader that stages tables under the run's staging
// directory and publishes them to the store's output prefix.
func New(cfg *config.Config, store storage.ObjectStore, runID string) etl.Loader {
	return &loader{cfg: cfg, store: store, runID: runID}
}

// Load implements etl.Loader. Tables are published concurrently; the
// returned stats cover the tables that finished, even on failure.
func (l *loader) Load(
	ctx context.Context,
	star *schema.Star,
	tables []string,
) ([]etl.TableStats, error) {
	if len(tables) == 0 {
		tables = schema.TableNames()
	}
	for _, t := range tables {
		if !schema.IsTable(t) {
			return nil, fmt.Errorf("unknown table %q", t)
		}
	}

	results := make([]etl.TableStats, len(tables))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.JobsNumber)

	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			stats, err := l.publish(gCtx, star, table)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	err := g.Wait()

	var done []etl.TableStats
	for _, st := range results {
		if st.Table != "" {
			done = append(done, st)
		}
	}
	return done, err
}

func (l *loader) publish(
	ctx context.Context,
	star *schema.Star,
	table string,
) (etl.TableStats, error) {
	switch table {
	case schema.TableSongs:
		return publishTable(ctx, l, table, star.Songs, songPartition)
	case schema.TableArtists:
		return publishTable(ctx, l, table, star.Artists, unpartitioned[schema.Artist])
	case schema.TableUsers:
		return publishTable(ctx, l, table, star.Users, unpartitioned[schema.User])
	case schema.TableTime:
		return publishTable(ctx, l, table, star.Time, timePartition)
	case schema.TableSongplays:
		return publishTable(ctx, l, table, star.Songplays, songplayPartition)
	default:
		return etl.TableStats{}, fmt.Errorf("unknown table %q", table)
	}
}

// publishTable stages one table's partitions as local Parquet files and
// swaps them into the store behind the table's _SUCCESS marker.
func publishTable[T any](
	ctx context.Context,
	l *loader,
	table string,
	rows []T,
	partKey func(T) string,
) (etl.TableStats, error) {
	// Group rows by partition, preserving first-seen partition order so
	// repeated runs produce identical file layouts.
	var order []string
	parts := make(map[string][]T)
	for _, row := range rows {
		key := partKey(row)
		if _, ok := parts[key]; !ok {
			order = append(order, key)
		}
		parts[key] = append(parts[key], row)
	}
	if len(order) == 0 {
		// A table with zero rows still publishes its (empty) partition
		// so consumers see a marker instead of a missing table.
		order = append(order, "")
		parts[""] = nil
	}

	stagingRoot := filepath.Join(
		config.StagingDir(l.cfg.HomeDir), l.runID, table,
	)

	var staged []string
	for _, key := range order {
		dir := filepath.Join(stagingRoot, filepath.FromSlash(key))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return etl.TableStats{}, &etl.WriteError{Table: table, Key: dir, Err: err}
		}
		file := filepath.Join(dir, "part-00000.parquet")
		if err := writeParquet(file, parts[key]); err != nil {
			return etl.TableStats{}, &etl.WriteError{Table: table, Key: file, Err: err}
		}
		staged = append(staged, file)
	}

	tablePrefix := path.Join(l.cfg.Output.Prefix, table)
	marker := path.Join(tablePrefix, SuccessMarker)

	// Invalidate first. From here until the new marker lands the table
	// is unreadable to gating consumers, never inconsistent.
	if err := l.store.Remove(ctx, marker); err != nil {
		return etl.TableStats{}, &etl.WriteError{Table: table, Key: marker, Err: err}
	}
	if err := l.store.Remove(ctx, tablePrefix); err != nil {
		return etl.TableStats{}, &etl.WriteError{Table: table, Key: tablePrefix, Err: err}
	}

	for _, file := range staged {
		rel, err := filepath.Rel(stagingRoot, file)
		if err != nil {
			return etl.TableStats{}, &etl.WriteError{Table: table, Key: file, Err: err}
		}
		key := path.Join(tablePrefix, filepath.ToSlash(rel))
		if err := l.upload(ctx, key, file); err != nil {
			return etl.TableStats{}, &etl.WriteError{Table: table, Key: key, Err: err}
		}
	}

	err := l.store.Put(ctx, marker, bytes.NewReader(nil), 0)
	if err != nil {
		return etl.TableStats{}, &etl.WriteError{Table: table, Key: marker, Err: err}
	}

	if err := os.RemoveAll(stagingRoot); err != nil {
		slog.Warn("Cannot clean staging directory",
			"table", table, "dir", stagingRoot, "error", err)
	}

	slog.Info("Published table",
		"table", table, "rows", len(rows), "partitions", len(order))

	return etl.TableStats{
		Table:      table,
		Rows:       len(rows),
		Partitions: len(order),
	}, nil
}

func (l *loader) upload(ctx context.Context, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	return l.store.Put(ctx, key, f, info.Size())
}

// Partition keys, matching the PartitionBy policy in schema.Tables.

func songPartition(s schema.Song) string {
	return "year=" + strconv.Itoa(int(s.Year)) +
		"/artist_id=" + partValue(s.ArtistID)
}

func timePartition(t schema.TimeRow) string {
	return "year=" + strconv.Itoa(int(t.Year)) +
		"/month=" + strconv.Itoa(int(t.Month))
}

func songplayPartition(s schema.Songplay) string {
	return "year=" + strconv.Itoa(int(s.Year)) +
		"/month=" + strconv.Itoa(int(s.Month))
}

func unpartitioned[T any](T) string { return "" }

func partValue(s string) string {
	if s == "" {
		return hiveNullPartition
	}
	return s
}
