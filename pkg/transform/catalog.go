package transform

import (
	"github.com/playlake/playlake/pkg/schema"
)

// Songs projects the songs dimension from the catalog and drops
// duplicate song ids, keeping the first-encountered record. Records
// without a song id cannot be keyed and are skipped; other missing
// fields null-fill to zero values.
func Songs(recs []schema.SongRecord) []schema.Song {
	seen := make(map[string]bool, len(recs))
	res := make([]schema.Song, 0, len(recs))
	for _, r := range recs {
		if r.SongID == nil || *r.SongID == "" {
			continue
		}
		if seen[*r.SongID] {
			continue
		}
		seen[*r.SongID] = true
		res = append(res, schema.Song{
			SongID:   *r.SongID,
			Title:    strOrEmpty(r.Title),
			ArtistID: strOrEmpty(r.ArtistID),
			Year:     int32OrZero(r.Year),
			Duration: floatOrZero(r.Duration),
		})
	}
	return res
}

// Artists projects the artists dimension from the catalog and drops
// duplicate artist ids. Multiple songs may share an artist with
// diverging attributes; the first-encountered record wins, which is
// deterministic over the stable input ordering.
func Artists(recs []schema.SongRecord) []schema.Artist {
	seen := make(map[string]bool, len(recs))
	res := make([]schema.Artist, 0, len(recs))
	for _, r := range recs {
		if r.ArtistID == nil || *r.ArtistID == "" {
			continue
		}
		if seen[*r.ArtistID] {
			continue
		}
		seen[*r.ArtistID] = true
		res = append(res, schema.Artist{
			ArtistID:  *r.ArtistID,
			Name:      strOrEmpty(r.ArtistName),
			Location:  copyStr(r.ArtistLocation),
			Latitude:  copyFloat(r.ArtistLatitude),
			Longitude: copyFloat(r.ArtistLongitude),
		})
	}
	return res
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int32OrZero(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// copyStr and copyFloat detach output pointers from the raw records so
// derived tables never alias extractor-owned memory.
func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
