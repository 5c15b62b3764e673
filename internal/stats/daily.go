package stats

import (
	"time"

	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/timeutil"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

// DefaultWindowDays is the trailing window used when the caller does
// not pick one.
const DefaultWindowDays = 7

// DayTotal is the tracked seconds for one calendar day (midnight UTC).
type DayTotal struct {
	Date    time.Time
	Seconds int64
}

// DailyTotals sums completed sessions per calendar day over the last
// windowDays days inclusive of today, in ascending date order. Days
// with no activity are present with zero; sessions bucket by the UTC
// date of their start time. A non-nil taskID restricts to one task.
func (s *Service) DailyTotals(ownerID int64, taskID *uint, windowDays int) ([]DayTotal, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	today := timeutil.StartOfDay(s.now())
	from := today.AddDate(0, 0, -(windowDays - 1))

	q := s.db.Where("owner_id = ? AND end_time IS NOT NULL AND start_time >= ?", ownerID, from)
	if taskID != nil {
		q = q.Where("task_id = ?", *taskID)
	}
	var sessions []models.Session
	if err := q.Order("start_time ASC").Find(&sessions).Error; err != nil {
		return nil, tracker.WrapStorage(err)
	}

	totals := make([]DayTotal, windowDays)
	for i := range totals {
		totals[i].Date = from.AddDate(0, 0, i)
	}
	for _, sess := range sessions {
		day := timeutil.StartOfDay(sess.StartTime)
		i := int(day.Sub(from) / (24 * time.Hour))
		if i < 0 || i >= windowDays {
			continue
		}
		totals[i].Seconds += timeutil.DurationSeconds(sess.StartTime, *sess.EndTime)
	}
	return totals, nil
}

// TotalAndAverage is the grand total over the window plus the per-day
// average. The average divides by windowDays, not by days with
// activity.
func (s *Service) TotalAndAverage(ownerID int64, taskID *uint, windowDays int) (total, average int64, err error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	days, err := s.DailyTotals(ownerID, taskID, windowDays)
	if err != nil {
		return 0, 0, err
	}
	for _, day := range days {
		total += day.Seconds
	}
	return total, total / int64(windowDays), nil
}
