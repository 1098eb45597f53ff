package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/playlake/playlake/pkg/schema"
)

// catalogRef is the resolved side of the fact join.
type catalogRef struct {
	songID   string
	artistID string
}

// joinKey builds the composite (title, artist name, duration) key.
// Duration is rendered with the shortest exact representation so the
// key is deterministic; the join requires exact equality.
func joinKey(title, artist string, duration float64) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte(0x1f)
	b.WriteString(artist)
	b.WriteByte(0x1f)
	b.WriteString(strconv.FormatFloat(duration, 'g', -1, 64))
	return b.String()
}

// catalogIndex maps join keys to catalog ids using the songs and
// artists projections. A song whose artist id is absent from the
// artists projection cannot contribute a key (no name to match on).
// The first song for a key wins, mirroring the dedup tie-break.
func catalogIndex(songs []schema.Song, artists []schema.Artist) map[string]catalogRef {
	names := make(map[string]string, len(artists))
	for _, a := range artists {
		names[a.ArtistID] = a.Name
	}
	idx := make(map[string]catalogRef, len(songs))
	for _, s := range songs {
		name, ok := names[s.ArtistID]
		if !ok {
			continue
		}
		key := joinKey(s.Title, name, s.Duration)
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = catalogRef{songID: s.SongID, artistID: s.ArtistID}
	}
	return idx
}

// Songplays assembles the fact table from valid plays. Each play
// receives a monotonically increasing synthetic id and is probed
// against the catalog on (song title, artist name, duration); the join
// is best-effort: a play missing a join component or matching nothing
// still yields a row with nil song_id/artist_id. Partition columns
// year and month are derived from the timestamp in loc.
func Songplays(
	plays []schema.LogEvent,
	songs []schema.Song,
	artists []schema.Artist,
	loc *time.Location,
) ([]schema.Songplay, int) {
	idx := catalogIndex(songs, artists)

	var matched int
	res := make([]schema.Songplay, 0, len(plays))
	for i, ev := range plays {
		t := time.UnixMilli(*ev.TS).In(loc)
		row := schema.Songplay{
			SongplayID: int64(i) + 1,
			StartTime:  *ev.TS,
			UserID:     *ev.UserID,
			Level:      copyStr(ev.Level),
			SessionID:  copyInt64(ev.SessionID),
			Location:   copyStr(ev.Location),
			UserAgent:  copyStr(ev.UserAgent),
			Year:       int32(t.Year()),
			Month:      int32(t.Month()),
		}
		if ev.Song != nil && ev.Artist != nil && ev.Length != nil {
			if ref, ok := idx[joinKey(*ev.Song, *ev.Artist, *ev.Length)]; ok {
				songID := ref.songID
				artistID := ref.artistID
				row.SongID = &songID
				row.ArtistID = &artistID
				matched++
			}
		}
		res = append(res, row)
	}
	return res, matched
}
