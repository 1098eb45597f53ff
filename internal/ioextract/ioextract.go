// Package ioextract reads the raw JSON-lines datasets from the object
// store and decodes them into typed records.
//
// Files under a dataset's path are merged in lexicographically sorted
// key order; within a file, record order is preserved. The merged order
// is the stable input ordering the transformation's deduplication
// tie-breaks depend on, so files are decoded concurrently but results
// are assembled strictly by file position.
package ioextract

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/datasets"
	"github.com/playlake/playlake/pkg/etl"
	"github.com/playlake/playlake/pkg/schema"
	"github.com/playlake/playlake/pkg/storage"
)

// maxLineSize caps a single JSON-lines record at 4 MiB.
const maxLineSize = 4 * 1024 * 1024

type extractor struct {
	cfg   *config.Config
	ds    *datasets.Config
	store storage.ObjectStore
}

// New creates an Extractor that reads datasets from the given store.
func New(
	cfg *config.Config,
	ds *datasets.Config,
	store storage.ObjectStore,
) etl.Extractor {
	return &extractor{cfg: cfg, ds: ds, store: store}
}

// SongRecords implements etl.Extractor.
func (ex *extractor) SongRecords(
	ctx context.Context,
) ([]schema.SongRecord, *etl.SourceStats, error) {
	return extractDataset[schema.SongRecord](ctx, ex, datasets.SongData)
}

// LogEvents implements etl.Extractor.
func (ex *extractor) LogEvents(
	ctx context.Context,
) ([]schema.LogEvent, *etl.SourceStats, error) {
	return extractDataset[schema.LogEvent](ctx, ex, datasets.LogData)
}

// fileResult holds one decoded file. Results are collected per file so
// the merged record order is independent of worker scheduling.
type fileResult[T any] struct {
	records   []T
	malformed int
}

// extractDataset lists a dataset's files and decodes them with a pool
// of cfg.JobsNumber workers.
func extractDataset[T any](
	ctx context.Context,
	ex *extractor,
	name string,
) ([]T, *etl.SourceStats, error) {
	ds, err := ex.ds.Get(name)
	if err != nil {
		return nil, nil, err
	}

	prefix := path.Join(ex.cfg.Input.Prefix, ds.Path)
	keys, err := ex.store.List(ctx, prefix)
	if err != nil {
		return nil, nil, err
	}

	files := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, ds.Suffix) {
			files = append(files, k)
		}
	}
	if len(files) == 0 {
		return nil, nil, &etl.EmptyInputError{Dataset: name, Prefix: prefix}
	}

	slog.Info("Extracting dataset", "dataset", name, "files", len(files))

	bar := newProgressBar(len(files), "Reading "+name+": ")
	defer bar.Finish()

	results := make([]fileResult[T], len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(ex.cfg.JobsNumber)

	for i, key := range files {
		i, key := i, key
		g.Go(func() error {
			res, err := decodeFile[T](gCtx, ex.store, key)
			if err != nil {
				return err
			}
			results[i] = res
			bar.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &etl.SourceStats{Dataset: name, Files: len(files)}
	var records []T
	for _, res := range results {
		records = append(records, res.records...)
		stats.Malformed += res.malformed
	}
	stats.Records = len(records)

	slog.Info(
		"Extracted dataset",
		"dataset", name,
		"records", stats.Records,
		"malformed", stats.Malformed,
	)
	return records, stats, nil
}

// decodeFile reads one JSON-lines object. Undecodable lines are dropped
// and counted; blank lines are skipped silently.
func decodeFile[T any](
	ctx context.Context,
	store storage.ObjectStore,
	key string,
) (fileResult[T], error) {
	var res fileResult[T]

	rc, err := store.Get(ctx, key)
	if err != nil {
		return res, err
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var rec T
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			res.malformed++
			mErr := &etl.MalformedRecordError{Key: key, Line: lineNum, Err: err}
			slog.Debug("Dropped malformed record", "error", mErr)
			continue
		}
		res.records = append(res.records, rec)
	}
	if err := sc.Err(); err != nil {
		return res, err
	}

	return res, nil
}
