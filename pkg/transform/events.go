package transform

import (
	"github.com/playlake/playlake/pkg/schema"
)

// FilterPlays retains only events whose page is exactly "NextSong".
// Every downstream derivation (users, time, songplays) operates on
// this filtered subset only.
func FilterPlays(events []schema.LogEvent) []schema.LogEvent {
	res := make([]schema.LogEvent, 0, len(events))
	for _, ev := range events {
		if ev.Page != nil && *ev.Page == schema.PageNextSong {
			res = append(res, ev)
		}
	}
	return res
}

// ValidPlays applies the row-level validity filter to filtered plays:
// the timestamp must be present and positive (otherwise the record is
// a Malformed-Record and counted in badTS), and the user id must be
// present and non-empty (counted in noUser). Everything that survives
// produces exactly one songplays row.
func ValidPlays(plays []schema.LogEvent) (valid []schema.LogEvent, badTS, noUser int) {
	valid = make([]schema.LogEvent, 0, len(plays))
	for _, ev := range plays {
		if ev.TS == nil || *ev.TS <= 0 {
			badTS++
			continue
		}
		if ev.UserID == nil || *ev.UserID == "" {
			noUser++
			continue
		}
		valid = append(valid, ev)
	}
	return valid, badTS, noUser
}

// Users projects the users dimension from valid plays. Each user id
// appears once, carrying the profile of the user's most recent event;
// a timestamp tie is won by the later input position, so re-runs on
// the same input agree. Output order is the order of each user's first
// appearance.
func Users(plays []schema.LogEvent) []schema.User {
	type best struct {
		ts  int64
		idx int // position in the output slice
	}
	byUser := make(map[string]best, len(plays))
	res := make([]schema.User, 0, len(plays))

	for _, ev := range plays {
		id := *ev.UserID
		ts := *ev.TS
		row := schema.User{
			UserID:    id,
			FirstName: copyStr(ev.FirstName),
			LastName:  copyStr(ev.LastName),
			Gender:    copyStr(ev.Gender),
			Level:     copyStr(ev.Level),
		}
		if b, ok := byUser[id]; ok {
			if ts >= b.ts {
				res[b.idx] = row
				byUser[id] = best{ts: ts, idx: b.idx}
			}
			continue
		}
		byUser[id] = best{ts: ts, idx: len(res)}
		res = append(res, row)
	}
	return res
}
