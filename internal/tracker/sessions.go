package tracker

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/timeutil"
)

// StoppedSession is what StopSession hands back for the goodbye
// message: the task worked on and the session length.
type StoppedSession struct {
	TaskName string
	Seconds  int64
	Duration string // H:MM:SS
}

// StartSession opens a new tracking session on the given task. It
// fails with ErrNotFound when the task does not exist or belongs to
// another owner, and with ErrConflict when the owner already has an
// active session. The check-then-insert runs under the owner's lock
// and inside a transaction, so two concurrent starts for the same
// owner cannot both observe idle.
func (t *Tracker) StartSession(ownerID int64, taskID uint) (*models.Session, error) {
	mu := t.ownerLock(ownerID)
	mu.Lock()
	defer mu.Unlock()

	var session models.Session
	err := t.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ? AND owner_id = ?", taskID, ownerID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: task #%d", ErrNotFound, taskID)
			}
			return WrapStorage(err)
		}

		var active models.Session
		err := tx.Where("owner_id = ? AND is_active = ?", ownerID, true).First(&active).Error
		if err == nil {
			return fmt.Errorf("%w: session already active on task #%d", ErrConflict, active.TaskID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return WrapStorage(err)
		}

		session = models.Session{
			TaskID:    taskID,
			OwnerID:   ownerID,
			StartTime: t.now().UTC(),
			IsActive:  true,
		}
		if err := tx.Create(&session).Error; err != nil {
			// The partial unique index trips when another process
			// slipped past the check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: session already active", ErrConflict)
			}
			return WrapStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := t.db.Preload("Task").First(&session, session.ID).Error; err != nil {
		return nil, WrapStorage(err)
	}
	return &session, nil
}

// StopSession closes the owner's active session, setting its end time
// exactly once, and reports the task name and the formatted duration.
// Fails with ErrNotFound when the owner is idle.
func (t *Tracker) StopSession(ownerID int64) (*StoppedSession, error) {
	mu := t.ownerLock(ownerID)
	mu.Lock()
	defer mu.Unlock()

	var stopped *StoppedSession
	err := t.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		err := tx.Preload("Task").
			Where("owner_id = ? AND is_active = ?", ownerID, true).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no active session", ErrNotFound)
			}
			return WrapStorage(err)
		}

		now := t.now().UTC()
		err = tx.Model(&models.Session{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"end_time":  now,
				"is_active": false,
			}).Error
		if err != nil {
			return WrapStorage(err)
		}

		seconds := timeutil.DurationSeconds(session.StartTime, now)
		stopped = &StoppedSession{
			TaskName: session.Task.Name,
			Seconds:  seconds,
			Duration: timeutil.FormatDuration(seconds),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stopped, nil
}

// ActiveSession returns the owner's active session with its task
// preloaded, or nil when the owner is idle. Pure lookup.
func (t *Tracker) ActiveSession(ownerID int64) (*models.Session, error) {
	var session models.Session
	err := t.db.Preload("Task").
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapStorage(err)
	}
	return &session, nil
}
