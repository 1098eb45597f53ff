// Package transform derives the five star-schema tables from the two
// raw sources. Every function here is pure and deterministic: no I/O,
// no clock, no shared state, output depends only on the inputs and the
// stable input ordering the extractor guarantees. This keeps the stage
// independently testable and trivially parallelizable by any caller.
//
// Tie-break rules (documented, deterministic):
//   - songs:   duplicate song_id → first-encountered record wins
//   - artists: duplicate artist_id → first-encountered record wins
//   - users:   duplicate user_id → maximum event timestamp wins,
//     later input position wins a timestamp tie
package transform

import (
	"time"

	"github.com/playlake/playlake/pkg/etl"
	"github.com/playlake/playlake/pkg/schema"
)

// Apply runs the complete transformation: catalog projection, play
// filtering and validation, user/time derivation and fact assembly.
//
// loc is the calendar convention for timestamp decomposition; callers
// pass time.UTC unless configured otherwise.
func Apply(
	songs []schema.SongRecord,
	events []schema.LogEvent,
	loc *time.Location,
) (*schema.Star, etl.TransformStats) {
	var stats etl.TransformStats

	plays := FilterPlays(events)
	valid, badTS, noUser := ValidPlays(plays)
	stats.DroppedBadTimestamp = badTS
	stats.DroppedNoUser = noUser
	stats.PlayEvents = len(valid)

	star := &schema.Star{
		Songs:   Songs(songs),
		Artists: Artists(songs),
		Users:   Users(valid),
		Time:    TimeTable(valid, loc),
	}

	var matched int
	star.Songplays, matched = Songplays(valid, star.Songs, star.Artists, loc)
	stats.MatchedPlays = matched

	return star, stats
}
