package transform

import (
	"time"

	"github.com/playlake/playlake/pkg/schema"
)

// Decompose converts an epoch-milliseconds timestamp into calendar
// parts in the given location. The location is applied consistently to
// every part; the host locale never participates, so the decomposition
// is identical on any machine. Weekday follows time.Weekday numbering
// (0=Sunday .. 6=Saturday); Week is the ISO 8601 week number.
func Decompose(ms int64, loc *time.Location) schema.TimeRow {
	t := time.UnixMilli(ms).In(loc)
	_, week := t.ISOWeek()
	return schema.TimeRow{
		StartTime: ms,
		Hour:      int32(t.Hour()),
		Day:       int32(t.Day()),
		Week:      int32(week),
		Month:     int32(t.Month()),
		Year:      int32(t.Year()),
		Weekday:   int32(t.Weekday()),
	}
}

// TimeTable derives the time dimension from valid plays: each distinct
// timestamp appears exactly once, in order of first appearance.
func TimeTable(plays []schema.LogEvent, loc *time.Location) []schema.TimeRow {
	seen := make(map[int64]bool, len(plays))
	res := make([]schema.TimeRow, 0, len(plays))
	for _, ev := range plays {
		ms := *ev.TS
		if seen[ms] {
			continue
		}
		seen[ms] = true
		res = append(res, Decompose(ms, loc))
	}
	return res
}
