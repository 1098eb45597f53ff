// Package etl defines the contracts of the three pipeline stages and
// the statistics a run reports.
//
// The Extractor and Loader are the only components with I/O; the
// transformation between them (pkg/transform) is a pure function, so
// implementations of these interfaces form the complete impure surface
// of the pipeline.
package etl

import (
	"context"
	"time"

	"github.com/playlake/playlake/pkg/schema"
)

// Extractor reads the two raw JSON-lines sources into typed records.
//
// Files below a source's prefix are merged, in lexicographically
// sorted key order, into one logical table; that ordering is the
// stable input ordering all deduplication tie-breaks refer to.
// A source with zero files yields an EmptyInputError; a line that
// fails to decode is dropped and counted in SourceStats.Malformed.
type Extractor interface {
	// SongRecords reads the song catalog.
	SongRecords(ctx context.Context) ([]schema.SongRecord, *SourceStats, error)

	// LogEvents reads the app interaction log.
	LogEvents(ctx context.Context) ([]schema.LogEvent, *SourceStats, error)
}

// Loader writes derived tables as partitioned Parquet under the output
// prefix. A table is staged to a temporary location first and becomes
// visible to consumers only once its _SUCCESS marker is written; a
// failed run never leaves a table with a fresh marker and partial data.
type Loader interface {
	// Load publishes the selected tables. It returns the stats of the
	// tables written so far even when it fails partway.
	Load(ctx context.Context, star *schema.Star, tables []string) ([]TableStats, error)
}

// Runner executes extract → transform → load to completion.
type Runner interface {
	// Run produces the selected tables (all five when tables is empty)
	// and reports the run summary. No partial success: an error means
	// the published output must not be treated as a consistent set.
	Run(ctx context.Context, tables []string) (*Summary, error)
}

// SourceStats reports one source's extraction outcome.
type SourceStats struct {
	// Dataset is the logical source name ("song_data", "log_data").
	Dataset string

	// Files is the number of input files merged.
	Files int

	// Records is the number of successfully decoded records.
	Records int

	// Malformed is the number of dropped undecodable lines.
	Malformed int
}

// TransformStats reports row-level outcomes of the pure transformation.
type TransformStats struct {
	// PlayEvents is the number of NextSong events that produced a
	// songplays row.
	PlayEvents int

	// DroppedBadTimestamp counts NextSong events dropped because their
	// timestamp was missing or not positive (Malformed-Record).
	DroppedBadTimestamp int

	// DroppedNoUser counts NextSong events dropped by the row-level
	// validity filter (missing user id).
	DroppedNoUser int

	// MatchedPlays is the number of songplays rows whose catalog join
	// resolved song_id and artist_id.
	MatchedPlays int
}

// TableStats reports one published table.
type TableStats struct {
	// Table is the table name.
	Table string

	// Rows is the number of rows written.
	Rows int

	// Partitions is the number of hive partitions (1 for
	// unpartitioned tables).
	Partitions int
}

// Summary is the user-visible result of a run.
type Summary struct {
	// RunID identifies the run and its staging area.
	RunID string

	// Sources holds extraction stats per raw source.
	Sources []SourceStats

	// Transform holds row-level transformation stats.
	Transform TransformStats

	// Tables holds stats per published table.
	Tables []TableStats

	// Dropped is the total number of dropped records (malformed lines
	// plus unparseable timestamps) across the run.
	Dropped int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}
