package stats

import (
	"time"
)

const secondsPerHour = 3600

// HourSegment is a slice of a session lying within a single
// hour-of-day bucket.
type HourSegment struct {
	Hour    int // 0..23, UTC
	Seconds int64
}

// SplitByHour cuts the closed interval [start, end] at every clock
// hour boundary it crosses and returns one segment per bucket touched,
// in order. The segment seconds always sum to exactly
// end-start (whole seconds); an interval inside a single hour yields
// exactly one segment. Intervals that run backwards clamp to a single
// zero-length segment.
func SplitByHour(start, end time.Time) []HourSegment {
	cursor := start.Unix()
	last := end.Unix()
	if last < cursor {
		last = cursor
	}

	var segments []HourSegment
	for {
		hour := time.Unix(cursor, 0).UTC().Hour()
		boundary := cursor - cursor%secondsPerHour + secondsPerHour
		if boundary < last {
			segments = append(segments, HourSegment{Hour: hour, Seconds: boundary - cursor})
			cursor = boundary
			continue
		}
		segments = append(segments, HourSegment{Hour: hour, Seconds: last - cursor})
		return segments
	}
}
