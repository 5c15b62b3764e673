package tracker

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ayaskarov/timekeep/internal/models"
)

// CreateTask persists a new task for the owner. The name must be
// non-empty after trimming; duplicates are allowed.
func (t *Tracker) CreateTask(ownerID int64, name string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is empty", ErrValidation)
	}

	task := models.Task{
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: t.now().UTC(),
	}
	if err := t.db.Create(&task).Error; err != nil {
		return nil, WrapStorage(err)
	}

	return &task, nil
}

// DeleteTask removes a task and every session recorded against it.
// Deleting a task that does not exist or belongs to another owner is
// a no-op, not an error.
func (t *Tracker) DeleteTask(ownerID int64, taskID uint) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", taskID, ownerID).Delete(&models.Task{})
		if res.Error != nil {
			return WrapStorage(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		// Explicit cascade; the FK constraint is backup for writers
		// that bypass the engine.
		if err := tx.Where("task_id = ?", taskID).Delete(&models.Session{}).Error; err != nil {
			return WrapStorage(err)
		}
		return nil
	})
}

// ListTasks returns the owner's tasks ordered by creation time. The
// ordering is load-bearing: callers resolve "task number N" against
// this exact sequence.
func (t *Tracker) ListTasks(ownerID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := t.db.Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, WrapStorage(err)
	}
	return tasks, nil
}
