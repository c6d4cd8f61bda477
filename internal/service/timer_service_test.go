package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/timer"
)

// failingEntryRepo fails Create a fixed number of times before delegating.
type failingEntryRepo struct {
	repository.TimeEntryRepo
	failures int
}

func (r *failingEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	if r.failures > 0 {
		r.failures--
		return nil, errors.New("store unavailable")
	}
	return r.TimeEntryRepo.Create(ctx, e)
}

func TestTimerService_StartStopSave(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, task := seedProjectTask(t, r, 0)

	clock := newFakeClock()
	svc := NewTimerService(timer.NewController(clock), r.entries, r.tasks, nil)

	sess, err := svc.Start(ctx, task.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, timer.StateRunning, sess.State)

	clock.Advance(90 * time.Minute)
	sess, err = svc.Stop(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, timer.StateStopped, sess.State)
	require.NotNil(t, sess.Pending)
	assert.Equal(t, 90, sess.Pending.DurationMinutes)

	stored, err := svc.Save(ctx, task.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, task.ProjectID, stored.ProjectID, "project should be resolved from the task")
	assert.Equal(t, "2024-01-08", stored.WorkDate)

	// Session is gone once the entry is saved.
	_, ok := svc.Session(task.ID)
	assert.False(t, ok)

	listed, err := r.entries.List(ctx, repository.EntryFilter{TaskID: task.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 90, listed[0].DurationMinutes)
}

func TestTimerService_SaveRetriesAfterStoreFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, task := seedProjectTask(t, r, 0)

	clock := newFakeClock()
	flaky := &failingEntryRepo{TimeEntryRepo: r.entries, failures: 1}
	svc := NewTimerService(timer.NewController(clock), flaky, r.tasks, nil)

	_, err := svc.Start(ctx, task.ID, "emp-1")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = svc.Stop(ctx, task.ID)
	require.NoError(t, err)

	_, err = svc.Save(ctx, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	// The pending entry survives the failure and stays save-able.
	sess, ok := svc.Session(task.ID)
	require.True(t, ok)
	assert.Equal(t, timer.StateStopped, sess.State)
	require.NotNil(t, sess.Pending)

	stored, err := svc.Save(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.DurationMinutes)

	listed, err := r.entries.List(ctx, repository.EntryFilter{TaskID: task.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1, "retry must not duplicate the entry")
}

func TestTimerService_SaveWithoutPendingSession(t *testing.T) {
	r := setupRepos(t)
	clock := newFakeClock()
	svc := NewTimerService(timer.NewController(clock), r.entries, r.tasks, nil)

	_, err := svc.Save(context.Background(), "no-such-task")
	require.Error(t, err)
	assert.ErrorIs(t, err, timer.ErrInvalidTransition)
}

func TestTimerService_SaveForUnknownTaskKeepsEntry(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	clock := newFakeClock()
	svc := NewTimerService(timer.NewController(clock), r.entries, r.tasks, nil)

	// Track against a task the store has never seen; the entry still saves,
	// just without a project reference.
	_, err := svc.Start(ctx, "adhoc-task", "emp-1")
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)
	_, err = svc.Stop(ctx, "adhoc-task")
	require.NoError(t, err)

	stored, err := svc.Save(ctx, "adhoc-task")
	require.NoError(t, err)
	assert.Empty(t, stored.ProjectID)
}

func TestTimerService_DiscardDropsPending(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, task := seedProjectTask(t, r, 0)

	clock := newFakeClock()
	svc := NewTimerService(timer.NewController(clock), r.entries, r.tasks, nil)

	_, err := svc.Start(ctx, task.ID, "emp-1")
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	_, err = svc.Stop(ctx, task.ID)
	require.NoError(t, err)

	svc.Discard(task.ID)

	_, ok := svc.Session(task.ID)
	assert.False(t, ok)

	listed, err := r.entries.List(ctx, repository.EntryFilter{TaskID: task.ID})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
