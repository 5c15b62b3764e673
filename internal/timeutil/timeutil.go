package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders whole seconds as H:MM:SS. Hours are not
// zero-padded and grow without bound (25 hours renders as "25:00:00").
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// DurationSeconds is the interval length in whole epoch seconds,
// truncating fractional seconds on both ends. Intervals that run
// backwards (clock skew, hand-edited rows) clamp to zero instead of
// propagating negative totals.
func DurationSeconds(start, end time.Time) int64 {
	d := end.Unix() - start.Unix()
	if d < 0 {
		return 0
	}
	return d
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
