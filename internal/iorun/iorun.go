// Package iorun executes the extract, transform, load pipeline.
package iorun

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/playlake/playlake/internal/ioextract"
	"github.com/playlake/playlake/internal/ioload"
	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/datasets"
	"github.com/playlake/playlake/pkg/etl"
	"github.com/playlake/playlake/pkg/schema"
	"github.com/playlake/playlake/pkg/storage"
	"github.com/playlake/playlake/pkg/transform"
)

type runner struct {
	cfg   *config.Config
	ds    *datasets.Config
	store storage.ObjectStore
}

// New creates a Runner wired to the given store and dataset layout.
func New(
	cfg *config.Config,
	ds *datasets.Config,
	store storage.ObjectStore,
) etl.Runner {
	return &runner{cfg: cfg, ds: ds, store: store}
}

// Run implements etl.Runner.
func (r *runner) Run(
	ctx context.Context,
	tables []string,
) (*etl.Summary, error) {
	start := time.Now()
	runID := uuid.New().String()

	for _, t := range tables {
		if !schema.IsTable(t) {
			return nil, fmt.Errorf("unknown table %q", t)
		}
	}

	loc, err := time.LoadLocation(r.cfg.Transform.Timezone)
	if err != nil {
		return nil, fmt.Errorf(
			"invalid timezone %q: %w", r.cfg.Transform.Timezone, err,
		)
	}

	slog.Info("Starting run",
		"runID", runID,
		"backend", r.cfg.Storage.Backend,
		"tables", tables,
	)

	// Both sources are independent, extract them in parallel.
	ex := ioextract.New(r.cfg, r.ds, r.store)

	var (
		songs     []schema.SongRecord
		events    []schema.LogEvent
		songStats *etl.SourceStats
		logStats  *etl.SourceStats
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		songs, songStats, err = ex.SongRecords(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		events, logStats, err = ex.LogEvents(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	star, tStats := transform.Apply(songs, events, loc)

	dropped := songStats.Malformed + logStats.Malformed +
		tStats.DroppedBadTimestamp
	total := songStats.Records + songStats.Malformed +
		logStats.Records + logStats.Malformed

	if limit := r.cfg.Transform.MaxDropRatio; limit > 0 && total > 0 {
		ratio := float64(dropped) / float64(total)
		if ratio > limit {
			return nil, &etl.DropRateError{
				Dropped: dropped,
				Total:   total,
				Limit:   limit,
			}
		}
	}

	loader := ioload.New(r.cfg, r.store, runID)
	tableStats, err := loader.Load(ctx, star, tables)
	if err != nil {
		return nil, err
	}

	res := &etl.Summary{
		RunID:     runID,
		Sources:   []etl.SourceStats{*songStats, *logStats},
		Transform: tStats,
		Tables:    tableStats,
		Dropped:   dropped,
		Elapsed:   time.Since(start),
	}

	var rows int64
	for _, ts := range tableStats {
		rows += int64(ts.Rows)
	}
	slog.Info("Completed run",
		"runID", runID,
		"tables", len(tableStats),
		"rows", humanize.Comma(rows),
		"dropped", dropped,
		"elapsed", res.Elapsed.Round(time.Millisecond).String(),
	)

	return res, nil
}
