package stats

import (
	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

const hoursPerDay = 24

// HourStat is one hour-of-day bucket after the presentation offset.
type HourStat struct {
	Hour    int // 0..23, offset applied
	Seconds int64
	Percent float64 // share of the grand total, 0 when no activity
}

// HourlyDistribution builds the activity-by-hour histogram over every
// completed session the owner has, with no trailing window. Each
// session is split at hour boundaries so a session spanning several
// hours lands exactly in each bucket it touched. The utcOffset shifts
// buckets at presentation time, (hour + offset) mod 24; all 24 buckets
// are present even when empty.
func (s *Service) HourlyDistribution(ownerID int64, utcOffset int) ([]HourStat, error) {
	var sessions []models.Session
	err := s.db.Where("owner_id = ? AND end_time IS NOT NULL", ownerID).
		Find(&sessions).Error
	if err != nil {
		return nil, tracker.WrapStorage(err)
	}

	var buckets [hoursPerDay]int64
	var grand int64
	for _, sess := range sessions {
		for _, seg := range SplitByHour(sess.StartTime, *sess.EndTime) {
			buckets[seg.Hour] += seg.Seconds
			grand += seg.Seconds
		}
	}

	out := make([]HourStat, hoursPerDay)
	for hour, seconds := range buckets {
		shifted := ((hour+utcOffset)%hoursPerDay + hoursPerDay) % hoursPerDay
		out[shifted] = HourStat{Hour: shifted, Seconds: seconds}
	}
	if grand > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Seconds) / float64(grand) * 100
		}
	}
	return out, nil
}
