package transform_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playlake/playlake/pkg/schema"
	"github.com/playlake/playlake/pkg/transform"
)

// 2018-11-15T00:30:26Z, a Thursday in ISO week 46.
const tsNov15 = int64(1542241826000)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i64Ptr(i int64) *int64     { return &i }
func i32Ptr(i int32) *int32     { return &i }

func songRecord(id, title, artistID, artistName string, dur float64) schema.SongRecord {
	return schema.SongRecord{
		SongID:     strPtr(id),
		Title:      strPtr(title),
		Duration:   f64Ptr(dur),
		Year:       i32Ptr(1970),
		ArtistID:   strPtr(artistID),
		ArtistName: strPtr(artistName),
	}
}

func playEvent(userID string, ts int64, song, artist string, length float64) schema.LogEvent {
	return schema.LogEvent{
		UserID: strPtr(userID),
		TS:     i64Ptr(ts),
		Page:   strPtr(schema.PageNextSong),
		Song:   strPtr(song),
		Artist: strPtr(artist),
		Length: f64Ptr(length),
		Level:  strPtr("free"),
	}
}

// TestApply_CatalogMatch verifies that a play whose (song, artist,
// length) exactly equals a catalog entry's (title, artist_name,
// duration) resolves both foreign keys.
func TestApply_CatalogMatch(t *testing.T) {
	songs := []schema.SongRecord{
		songRecord("S1", "Let It Be", "A1", "The Beatles", 243.5),
	}
	events := []schema.LogEvent{
		playEvent("7", tsNov15, "Let It Be", "The Beatles", 243.5),
	}

	star, stats := transform.Apply(songs, events, time.UTC)

	require.Len(t, star.Songplays, 1)
	sp := star.Songplays[0]
	require.NotNil(t, sp.SongID)
	require.NotNil(t, sp.ArtistID)
	assert.Equal(t, "S1", *sp.SongID)
	assert.Equal(t, "A1", *sp.ArtistID)
	assert.Equal(t, "7", sp.UserID)
	assert.Equal(t, int64(1), sp.SongplayID)
	assert.Equal(t, 1, stats.MatchedPlays)
	assert.Equal(t, 1, stats.PlayEvents)
}

// TestApply_CatalogMiss verifies the best-effort join: a play that
// matches no catalog entry still yields a fact row, with nil keys.
func TestApply_CatalogMiss(t *testing.T) {
	songs := []schema.SongRecord{
		songRecord("S1", "Let It Be", "A1", "The Beatles", 243.5),
	}
	events := []schema.LogEvent{
		// Same song and artist but a different reported length.
		playEvent("7", tsNov15, "Let It Be", "The Beatles", 99.0),
	}

	star, stats := transform.Apply(songs, events, time.UTC)

	require.Len(t, star.Songplays, 1)
	assert.Nil(t, star.Songplays[0].SongID)
	assert.Nil(t, star.Songplays[0].ArtistID)
	assert.Equal(t, 0, stats.MatchedPlays)
	assert.Equal(t, 1, stats.PlayEvents)
}

// TestApply_PartialJoinKey verifies that a play missing any join
// component is never probed against the catalog but still produces a
// fact row.
func TestApply_PartialJoinKey(t *testing.T) {
	songs := []schema.SongRecord{
		songRecord("S1", "Let It Be", "A1", "The Beatles", 243.5),
	}
	ev := playEvent("7", tsNov15, "Let It Be", "The Beatles", 243.5)
	ev.Length = nil
	star, _ := transform.Apply(songs, []schema.LogEvent{ev}, time.UTC)

	require.Len(t, star.Songplays, 1)
	assert.Nil(t, star.Songplays[0].SongID)
	assert.Nil(t, star.Songplays[0].ArtistID)
}

// TestApply_NonPlayPagesExcluded verifies that only NextSong events
// contribute to songplays, users and time.
func TestApply_NonPlayPagesExcluded(t *testing.T) {
	login := schema.LogEvent{
		UserID: strPtr("7"),
		TS:     i64Ptr(tsNov15),
		Page:   strPtr("Login"),
	}
	home := schema.LogEvent{
		UserID: strPtr("8"),
		TS:     i64Ptr(tsNov15 + 1000),
		Page:   strPtr("Home"),
	}
	play := playEvent("9", tsNov15+2000, "Song", "Artist", 100)

	star, stats := transform.Apply(nil,
		[]schema.LogEvent{login, home, play}, time.UTC)

	assert.Len(t, star.Songplays, 1)
	assert.Len(t, star.Time, 1)
	require.Len(t, star.Users, 1)
	assert.Equal(t, "9", star.Users[0].UserID)
	assert.Equal(t, 1, stats.PlayEvents)
}

// TestApply_SongplayCountEqualsValidPlays verifies the one-to-one
// correspondence between valid NextSong events and fact rows, and the
// dense monotonically increasing ids.
func TestApply_SongplayCountEqualsValidPlays(t *testing.T) {
	var events []schema.LogEvent
	for i := 0; i < 5; i++ {
		events = append(events,
			playEvent("u", tsNov15+int64(i)*1000, "S", "A", 10))
	}
	// Invalid rows that must not produce fact rows.
	badTS := playEvent("u", 0, "S", "A", 10)
	noUser := playEvent("", tsNov15, "S", "A", 10)
	events = append(events, badTS, noUser)

	star, stats := transform.Apply(nil, events, time.UTC)

	require.Len(t, star.Songplays, 5)
	for i, sp := range star.Songplays {
		assert.Equal(t, int64(i)+1, sp.SongplayID)
	}
	assert.Equal(t, 5, stats.PlayEvents)
	assert.Equal(t, 1, stats.DroppedBadTimestamp)
	assert.Equal(t, 1, stats.DroppedNoUser)
}

// TestApply_Deterministic verifies that the same input produces the
// same output on repeated application.
func TestApply_Deterministic(t *testing.T) {
	songs := []schema.SongRecord{
		songRecord("S1", "Let It Be", "A1", "The Beatles", 243.5),
		songRecord("S2", "Yesterday", "A1", "The Beatles", 123.4),
	}
	events := []schema.LogEvent{
		playEvent("7", tsNov15, "Let It Be", "The Beatles", 243.5),
		playEvent("8", tsNov15+1000, "Yesterday", "The Beatles", 123.4),
		playEvent("7", tsNov15+2000, "Unknown", "Nobody", 50),
	}

	star1, stats1 := transform.Apply(songs, events, time.UTC)
	star2, stats2 := transform.Apply(songs, events, time.UTC)

	assert.Equal(t, star1, star2)
	assert.Equal(t, stats1, stats2)
}

// TestSongs_DuplicateKeepsFirst verifies first-encountered-wins
// deduplication of the songs dimension.
func TestSongs_DuplicateKeepsFirst(t *testing.T) {
	recs := []schema.SongRecord{
		songRecord("S1", "Original", "A1", "X", 100),
		songRecord("S1", "Duplicate", "A2", "Y", 200),
		songRecord("S2", "Other", "A1", "X", 300),
	}

	songs := transform.Songs(recs)

	require.Len(t, songs, 2)
	assert.Equal(t, "S1", songs[0].SongID)
	assert.Equal(t, "Original", songs[0].Title)
	assert.Equal(t, "S2", songs[1].SongID)
}

// TestSongs_MissingIDSkipped verifies that records without a song id
// are not projected.
func TestSongs_MissingIDSkipped(t *testing.T) {
	recs := []schema.SongRecord{
		{Title: strPtr("No ID")},
		songRecord("S1", "Has ID", "A1", "X", 100),
	}

	songs := transform.Songs(recs)

	require.Len(t, songs, 1)
	assert.Equal(t, "S1", songs[0].SongID)
}

// TestSongs_NullFill verifies that missing attributes null-fill to zero
// values instead of dropping the record.
func TestSongs_NullFill(t *testing.T) {
	recs := []schema.SongRecord{
		{SongID: strPtr("S1")},
	}

	songs := transform.Songs(recs)

	require.Len(t, songs, 1)
	assert.Equal(t, "", songs[0].Title)
	assert.Equal(t, int32(0), songs[0].Year)
	assert.Equal(t, float64(0), songs[0].Duration)
}

// TestArtists_DuplicateKeepsFirst verifies that when several catalog
// records share an artist, the first record's attributes win.
func TestArtists_DuplicateKeepsFirst(t *testing.T) {
	r1 := songRecord("S1", "One", "A1", "First Name", 100)
	r1.ArtistLocation = strPtr("Liverpool")
	r2 := songRecord("S2", "Two", "A1", "Second Name", 200)

	artists := transform.Artists([]schema.SongRecord{r1, r2})

	require.Len(t, artists, 1)
	assert.Equal(t, "A1", artists[0].ArtistID)
	assert.Equal(t, "First Name", artists[0].Name)
	require.NotNil(t, artists[0].Location)
	assert.Equal(t, "Liverpool", *artists[0].Location)
}

// TestUsers_LatestEventWins verifies that a user's row carries the
// profile of their most recent event, so an upgrade from free to paid
// within the batch surfaces as paid.
func TestUsers_LatestEventWins(t *testing.T) {
	early := playEvent("7", tsNov15, "S", "A", 10)
	early.Level = strPtr("free")
	late := playEvent("7", tsNov15+60000, "S", "A", 10)
	late.Level = strPtr("paid")

	// Later timestamp arrives first in input order; it must still win.
	users := transform.Users([]schema.LogEvent{late, early})

	require.Len(t, users, 1)
	require.NotNil(t, users[0].Level)
	assert.Equal(t, "paid", *users[0].Level)
}

// TestUsers_TimestampTieLaterPositionWins verifies the deterministic
// tie-break on equal timestamps.
func TestUsers_TimestampTieLaterPositionWins(t *testing.T) {
	first := playEvent("7", tsNov15, "S", "A", 10)
	first.Level = strPtr("free")
	second := playEvent("7", tsNov15, "S", "A", 10)
	second.Level = strPtr("paid")

	users := transform.Users([]schema.LogEvent{first, second})

	require.Len(t, users, 1)
	require.NotNil(t, users[0].Level)
	assert.Equal(t, "paid", *users[0].Level)
}

// TestTimeTable_DistinctTimestamps verifies that each distinct play
// timestamp appears exactly once.
func TestTimeTable_DistinctTimestamps(t *testing.T) {
	events := []schema.LogEvent{
		playEvent("1", tsNov15, "S", "A", 10),
		playEvent("2", tsNov15, "S", "A", 10),
		playEvent("3", tsNov15+1000, "S", "A", 10),
	}

	rows := transform.TimeTable(events, time.UTC)

	require.Len(t, rows, 2)
	assert.Equal(t, tsNov15, rows[0].StartTime)
	assert.Equal(t, tsNov15+1000, rows[1].StartTime)
}

// TestDecompose_CalendarParts verifies the decomposition of a known
// timestamp: 2018-11-15T00:30:26Z, a Thursday in ISO week 46.
func TestDecompose_CalendarParts(t *testing.T) {
	row := transform.Decompose(tsNov15, time.UTC)

	assert.Equal(t, tsNov15, row.StartTime)
	assert.Equal(t, int32(0), row.Hour)
	assert.Equal(t, int32(15), row.Day)
	assert.Equal(t, int32(46), row.Week)
	assert.Equal(t, int32(11), row.Month)
	assert.Equal(t, int32(2018), row.Year)
	assert.Equal(t, int32(4), row.Weekday)
}

// TestDecompose_RoundTrip verifies that the calendar parts agree with
// re-deriving them from the preserved epoch timestamp.
func TestDecompose_RoundTrip(t *testing.T) {
	for _, ms := range []int64{tsNov15, 1, 1700000000000} {
		row := transform.Decompose(ms, time.UTC)
		back := time.UnixMilli(row.StartTime).UTC()
		assert.Equal(t, int32(back.Hour()), row.Hour)
		assert.Equal(t, int32(back.Day()), row.Day)
		assert.Equal(t, int32(back.Month()), row.Month)
		assert.Equal(t, int32(back.Year()), row.Year)
		assert.Equal(t, int32(back.Weekday()), row.Weekday)
	}
}

// TestDecompose_Timezone verifies that a non-UTC location shifts the
// calendar parts while the epoch timestamp stays unchanged.
func TestDecompose_Timezone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	row := transform.Decompose(tsNov15, loc)

	assert.Equal(t, tsNov15, row.StartTime)
	assert.Equal(t, int32(2), row.Hour)
	assert.Equal(t, int32(15), row.Day)
}

// TestValidPlays_Counts verifies drop accounting of the row-level
// validity filter.
func TestValidPlays_Counts(t *testing.T) {
	noTS := playEvent("1", tsNov15, "S", "A", 10)
	noTS.TS = nil
	negTS := playEvent("2", -5, "S", "A", 10)
	nilUser := playEvent("", tsNov15, "S", "A", 10)
	nilUser.UserID = nil
	emptyUser := playEvent("", tsNov15, "S", "A", 10)
	ok := playEvent("3", tsNov15, "S", "A", 10)

	valid, badTS, noUser := transform.ValidPlays(
		[]schema.LogEvent{noTS, negTS, nilUser, emptyUser, ok})

	assert.Len(t, valid, 1)
	assert.Equal(t, 2, badTS)
	assert.Equal(t, 2, noUser)
}

// TestApply_ReferentialIntegrity verifies that every fact row's
// start_time and user_id resolve to exactly one dimension row.
func TestApply_ReferentialIntegrity(t *testing.T) {
	events := []schema.LogEvent{
		playEvent("7", tsNov15, "S", "A", 10),
		playEvent("7", tsNov15, "S", "A", 10),
		playEvent("8", tsNov15+1000, "S", "A", 10),
		playEvent("7", tsNov15+2000, "S", "A", 10),
	}

	star, _ := transform.Apply(nil, events, time.UTC)

	times := make(map[int64]int)
	for _, row := range star.Time {
		times[row.StartTime]++
	}
	users := make(map[string]int)
	for _, u := range star.Users {
		users[u.UserID]++
	}
	for _, sp := range star.Songplays {
		assert.Equal(t, 1, times[sp.StartTime])
		assert.Equal(t, 1, users[sp.UserID])
	}
}

// TestUsers_NonPlayEventsNotCandidates verifies that a non-NextSong
// event never contributes to a user's latest-state selection.
func TestUsers_NonPlayEventsNotCandidates(t *testing.T) {
	play := playEvent("7", tsNov15, "S", "A", 10)
	play.Level = strPtr("free")
	// A later Login event reports a different level; it must be ignored
	// because users are derived from plays only.
	login := schema.LogEvent{
		UserID: strPtr("7"),
		TS:     i64Ptr(tsNov15 + 60000),
		Page:   strPtr("Login"),
		Level:  strPtr("paid"),
	}

	star, _ := transform.Apply(nil, []schema.LogEvent{play, login}, time.UTC)

	require.Len(t, star.Users, 1)
	require.NotNil(t, star.Users[0].Level)
	assert.Equal(t, "free", *star.Users[0].Level)
}

// TestSongplays_PartitionColumns verifies that year and month are
// derived from the play timestamp in the given location.
func TestSongplays_PartitionColumns(t *testing.T) {
	events := []schema.LogEvent{
		playEvent("7", tsNov15, "S", "A", 10),
	}
	rows, _ := transform.Songplays(events, nil, nil, time.UTC)

	require.Len(t, rows, 1)
	assert.Equal(t, int32(2018), rows[0].Year)
	assert.Equal(t, int32(11), rows[0].Month)
}
