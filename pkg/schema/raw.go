// Package schema provides the data model for playlake: the raw
// schema-on-read records of both JSON sources and the derived
// star-schema rows with their Parquet layout.
//
// Raw record fields are pointers so a missing or null JSON field
// surfaces as nil instead of failing the read. Declaring the field set
// explicitly replaces JSON's schema looseness with a validated,
// testable null-fill policy.
package schema

// SongRecord is one record of the song catalog (song_data source).
// Artist attributes are denormalized onto it; they are split into the
// artists dimension during transformation.
type SongRecord struct {
	// NumSongs is the number of songs in the source record's block.
	// Carried through extraction but not projected into any table.
	NumSongs *int64 `json:"num_songs"`

	// SongID is the catalog identifier of the song.
	SongID *string `json:"song_id"`

	// Title is the song title, the first component of the fact join key.
	Title *string `json:"title"`

	// Duration is the song length in seconds.
	Duration *float64 `json:"duration"`

	// Year is the release year; 0 means unknown.
	Year *int32 `json:"year"`

	// ArtistID is the catalog identifier of the artist.
	ArtistID *string `json:"artist_id"`

	// ArtistName is the artist's name, the second component of the
	// fact join key.
	ArtistName *string `json:"artist_name"`

	// ArtistLocation is a free-form location string.
	ArtistLocation *string `json:"artist_location"`

	// ArtistLatitude and ArtistLongitude are geo coordinates,
	// frequently null in the catalog.
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// LogEvent is one record of the app interaction log (log_data source).
// Only events with Page == "NextSong" represent actual plays.
type LogEvent struct {
	// UserID identifies the listener. The source serializes it as a
	// string; empty or missing means a logged-out session.
	UserID *string `json:"userId"`

	// TS is the event time as epoch milliseconds.
	TS *int64 `json:"ts"`

	// Page is the app page that produced the event.
	Page *string `json:"page"`

	// Song, Artist and Length describe the played track and form the
	// probe side of the catalog join.
	Song   *string  `json:"song"`
	Artist *string  `json:"artist"`
	Length *float64 `json:"length"`

	// SessionID groups events of one listening session.
	SessionID *int64 `json:"sessionId"`

	// ItemInSession is the ordinal of the event within its session.
	ItemInSession *int64 `json:"itemInSession"`

	// Level is the user's subscription tier ("free" or "paid") at the
	// time of the event.
	Level *string `json:"level"`

	// User profile attributes, denormalized onto every event.
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Gender    *string `json:"gender"`

	// Location and UserAgent describe the client.
	Location  *string `json:"location"`
	UserAgent *string `json:"userAgent"`

	// Registration is the user's registration time in epoch millis.
	Registration *float64 `json:"registration"`

	// Auth, Method and Status are HTTP-ish metadata of the interaction.
	Auth   *string `json:"auth"`
	Method *string `json:"method"`
	Status *int64  `json:"status"`
}

// PageNextSong is the page value marking a song play.
const PageNextSong = "NextSong"
