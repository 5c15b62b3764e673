package stats

import (
	"sort"

	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/timeutil"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

// DefaultOtherThreshold is the share below which CollapseOther folds
// an entry into "Other", in percent.
const DefaultOtherThreshold = 1.0

// OtherLabel names the synthetic long-tail entry.
const OtherLabel = "Other"

// TaskTotal is the tracked seconds for one task, with its share of
// the summed total.
type TaskTotal struct {
	TaskID  uint
	Name    string
	Seconds int64
	Percent float64
}

// TaskTotals sums completed sessions per task, sorted by total
// descending. Only tasks with at least one completed session in scope
// appear; ties keep the task listing order. A non-nil windowDays
// restricts to sessions started within the trailing window inclusive
// of today, otherwise the totals are all-time.
func (s *Service) TaskTotals(ownerID int64, windowDays *int) ([]TaskTotal, error) {
	q := s.db.Where("owner_id = ? AND end_time IS NOT NULL", ownerID)
	if windowDays != nil {
		from := timeutil.StartOfDay(s.now()).AddDate(0, 0, -(*windowDays - 1))
		q = q.Where("start_time >= ?", from)
	}
	var sessions []models.Session
	if err := q.Find(&sessions).Error; err != nil {
		return nil, tracker.WrapStorage(err)
	}

	seconds := make(map[uint]int64)
	for _, sess := range sessions {
		seconds[sess.TaskID] += timeutil.DurationSeconds(sess.StartTime, *sess.EndTime)
	}

	var tasks []models.Task
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, tracker.WrapStorage(err)
	}

	var out []TaskTotal
	var grand int64
	for _, task := range tasks {
		total, ok := seconds[task.ID]
		if !ok {
			continue
		}
		out = append(out, TaskTotal{TaskID: task.ID, Name: task.Name, Seconds: total})
		grand += total
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seconds > out[j].Seconds
	})
	if grand > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Seconds) / float64(grand) * 100
		}
	}
	return out, nil
}

// CollapseOther folds entries whose share is below threshold percent
// into a single synthetic entry appended at the end. Presentation
// post-processing only; stored data is untouched.
func CollapseOther(entries []TaskTotal, threshold float64) []TaskTotal {
	var kept []TaskTotal
	other := TaskTotal{Name: OtherLabel}
	merged := 0
	for _, entry := range entries {
		if entry.Percent < threshold {
			other.Seconds += entry.Seconds
			other.Percent += entry.Percent
			merged++
			continue
		}
		kept = append(kept, entry)
	}
	if merged > 0 {
		kept = append(kept, other)
	}
	return kept
}
