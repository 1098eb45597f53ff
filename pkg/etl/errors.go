package etl

import (
	"fmt"
)

// EmptyInputError is returned when a declared source path yields no
// files. The run aborts before any output is published: partial
// star-schema tables are worse than none.
type EmptyInputError struct {
	// Dataset is the logical source name.
	Dataset string

	// Prefix is the resolved key prefix that was listed.
	Prefix string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: dataset %q has no files under %q",
		e.Dataset, e.Prefix)
}

// MalformedRecordError describes one undecodable input line. It is
// absorbed and counted during extraction, never propagated; the type
// exists so debug logs and tests can speak about individual drops.
type MalformedRecordError struct {
	// Key is the object key of the file.
	Key string

	// Line is the 1-based line number within the file.
	Line int

	// Err is the decode error.
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %s:%d: %v", e.Key, e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// WriteError is returned when a table fails to persist. The run as a
// whole is failed; tables already published in the same run must not
// be treated as a consistent output set.
type WriteError struct {
	// Table is the derived table being written.
	Table string

	// Key is the staging path or object key involved.
	Key string

	// Err is the underlying failure.
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failure: table %q at %q: %v", e.Table, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DropRateError is returned when the share of dropped records exceeds
// the configured threshold, aborting the run before the load stage.
type DropRateError struct {
	// Dropped is the number of dropped records.
	Dropped int

	// Total is the number of input records seen.
	Total int

	// Limit is the configured maximum ratio.
	Limit float64
}

func (e *DropRateError) Error() string {
	return fmt.Sprintf("drop rate %d/%d exceeds limit %.2f",
		e.Dropped, e.Total, e.Limit)
}

// Ratio returns the observed drop ratio.
func (e *DropRateError) Ratio() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Dropped) / float64(e.Total)
}
