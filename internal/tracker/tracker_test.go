package tracker_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ayaskarov/timekeep/internal/config"
	"github.com/ayaskarov/timekeep/internal/db"
	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(gdb) })
	return gdb
}

// fakeClock is a settable wall clock for lifecycle tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newEngine(t *testing.T) (*tracker.Tracker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)}
	return tracker.New(openTestDB(t), tracker.WithClock(clock.Now)), clock
}

func TestCreateTaskTrimsName(t *testing.T) {
	engine, _ := newEngine(t)

	task, err := engine.CreateTask(1, "  Write  ")
	require.NoError(t, err)
	assert.Equal(t, "Write", task.Name)
	assert.NotZero(t, task.ID)
}

func TestCreateTaskEmptyName(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.CreateTask(1, "   ")
	require.ErrorIs(t, err, tracker.ErrValidation)
}

func TestCreateTaskAllowsDuplicateNames(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)
	_, err = engine.CreateTask(1, "Write")
	require.NoError(t, err)
}

func TestListTasksOrderedByCreation(t *testing.T) {
	engine, clock := newEngine(t)

	clock.Set(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	_, err := engine.CreateTask(1, "Oldest")
	require.NoError(t, err)
	clock.Set(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	_, err = engine.CreateTask(1, "Middle")
	require.NoError(t, err)
	clock.Set(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC))
	_, err = engine.CreateTask(1, "Newest")
	require.NoError(t, err)

	tasks, err := engine.ListTasks(1)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Oldest", tasks[0].Name)
	assert.Equal(t, "Middle", tasks[1].Name)
	assert.Equal(t, "Newest", tasks[2].Name)
}

func TestListTasksEmpty(t *testing.T) {
	engine, _ := newEngine(t)

	tasks, err := engine.ListTasks(1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasksOwnerScoped(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.CreateTask(1, "Mine")
	require.NoError(t, err)
	_, err = engine.CreateTask(2, "Theirs")
	require.NoError(t, err)

	tasks, err := engine.ListTasks(1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Mine", tasks[0].Name)
}

func TestDeleteTaskIdempotent(t *testing.T) {
	engine, _ := newEngine(t)

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)

	require.NoError(t, engine.DeleteTask(1, task.ID))
	// Second delete of the same id is a no-op, not an error.
	require.NoError(t, engine.DeleteTask(1, task.ID))
	// So is deleting an id that never existed.
	require.NoError(t, engine.DeleteTask(1, 9999))
}

func TestDeleteTaskForeignOwnerNoOp(t *testing.T) {
	engine, _ := newEngine(t)

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)

	require.NoError(t, engine.DeleteTask(2, task.ID))

	tasks, err := engine.ListTasks(1)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDeleteTaskCascadesSessions(t *testing.T) {
	gdb := openTestDB(t)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)}
	engine := tracker.New(gdb, tracker.WithClock(clock.Now))

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)
	_, err = engine.StartSession(1, task.ID)
	require.NoError(t, err)
	clock.Set(clock.Now().Add(time.Hour))
	_, err = engine.StopSession(1)
	require.NoError(t, err)

	require.NoError(t, engine.DeleteTask(1, task.ID))

	var sessionCount int64
	require.NoError(t, gdb.Model(&models.Session{}).
		Where("task_id = ?", task.ID).
		Count(&sessionCount).Error)
	assert.Equal(t, int64(0), sessionCount)
}

func TestSessionLifecycle(t *testing.T) {
	engine, clock := newEngine(t)

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)

	clock.Set(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	session, err := engine.StartSession(1, task.ID)
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.Nil(t, session.EndTime)
	assert.Equal(t, "Write", session.Task.Name)

	active, err := engine.ActiveSession(1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.ID, active.ID)
	assert.Equal(t, "Write", active.Task.Name)

	clock.Set(time.Date(2024, 1, 1, 11, 15, 0, 0, time.UTC))
	stopped, err := engine.StopSession(1)
	require.NoError(t, err)
	assert.Equal(t, "Write", stopped.TaskName)
	assert.Equal(t, int64(6300), stopped.Seconds)
	assert.Equal(t, "1:45:00", stopped.Duration)

	active, err = engine.ActiveSession(1)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestStartSessionUnknownTask(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.StartSession(1, 42)
	require.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestStartSessionForeignTask(t *testing.T) {
	engine, _ := newEngine(t)

	task, err := engine.CreateTask(2, "Theirs")
	require.NoError(t, err)

	_, err = engine.StartSession(1, task.ID)
	require.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestStartSessionConflict(t *testing.T) {
	engine, _ := newEngine(t)

	write, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)
	read, err := engine.CreateTask(1, "Read")
	require.NoError(t, err)

	first, err := engine.StartSession(1, write.ID)
	require.NoError(t, err)

	_, err = engine.StartSession(1, read.ID)
	require.ErrorIs(t, err, tracker.ErrConflict)

	// The first session is untouched by the failed start.
	active, err := engine.ActiveSession(1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)
	assert.Equal(t, "Write", active.Task.Name)
}

func TestStopSessionWhenIdle(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.StopSession(1)
	require.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestStopSessionClampsBackwardsClock(t *testing.T) {
	engine, clock := newEngine(t)

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)
	_, err = engine.StartSession(1, task.ID)
	require.NoError(t, err)

	clock.Set(clock.Now().Add(-time.Hour))
	stopped, err := engine.StopSession(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stopped.Seconds)
	assert.Equal(t, "0:00:00", stopped.Duration)
}

func TestSessionsIndependentPerOwner(t *testing.T) {
	engine, _ := newEngine(t)

	mine, err := engine.CreateTask(1, "Mine")
	require.NoError(t, err)
	theirs, err := engine.CreateTask(2, "Theirs")
	require.NoError(t, err)

	_, err = engine.StartSession(1, mine.ID)
	require.NoError(t, err)
	// Another owner starting is not a conflict.
	_, err = engine.StartSession(2, theirs.ID)
	require.NoError(t, err)

	_, err = engine.StopSession(1)
	require.NoError(t, err)

	active, err := engine.ActiveSession(2)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "Theirs", active.Task.Name)
}

// The invariant the rest of the system leans on: concurrent starts for
// one owner may not both observe idle and both insert.
func TestConcurrentStartSingleWinner(t *testing.T) {
	gdb := openTestDB(t)
	engine := tracker.New(gdb)

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := engine.StartSession(1, task.ID)
			errs[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errors.Is(err, tracker.ErrConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var activeCount int64
	require.NoError(t, gdb.Model(&models.Session{}).
		Where("owner_id = ? AND is_active = ?", int64(1), true).
		Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)
}

// Repeated start/stop rounds never leave more than one active row.
func TestStartStopStress(t *testing.T) {
	gdb := openTestDB(t)
	engine := tracker.New(gdb)

	task, err := engine.CreateTask(1, "Write")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := engine.StartSession(1, task.ID); err != nil {
					require.True(t, errors.Is(err, tracker.ErrConflict))
				}
				if _, err := engine.StopSession(1); err != nil {
					require.True(t, errors.Is(err, tracker.ErrNotFound))
				}

				var activeCount int64
				require.NoError(t, gdb.Model(&models.Session{}).
					Where("owner_id = ? AND is_active = ?", int64(1), true).
					Count(&activeCount).Error)
				require.LessOrEqual(t, activeCount, int64(1))
			}
		}()
	}
	wg.Wait()
}
