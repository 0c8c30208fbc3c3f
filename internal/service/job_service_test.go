package service

import (
	"context"
	"testing"

	"microblog/internal/models"
	"microblog/internal/queue"
	"microblog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type jobFixture struct {
	db      *gorm.DB
	queue   *queue.MemoryQueue
	jobs    *JobService
	notifs  *repository.NotificationRepository
	user    *models.User
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	db := newTestDB(t)
	q := queue.NewMemoryQueue()
	notifs := repository.NewNotificationRepository(db)
	jobs := NewJobService(db, repository.NewJobRepository(db), notifs, q, newTestLogger())
	return &jobFixture{
		db:     db,
		queue:  q,
		jobs:   jobs,
		notifs: notifs,
		user:   createTestUser(t, db, "alice"),
	}
}

func TestLaunchPersistsJobUnderTaskID(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.Complete)

	// The durable record exists before any worker picks the task up.
	task, err := f.queue.Fetch(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, job.ID, task.ID)

	userID, ok := queue.UintArg(task.Args, 0)
	require.True(t, ok)
	assert.Equal(t, f.user.ID, userID)
}

func TestReportProgressWritesNotificationAndLiveHandle(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)

	require.NoError(t, f.jobs.ReportProgress(ctx, job.ID, 40))

	assert.Equal(t, 40, f.jobs.Progress(ctx, job))

	n, err := f.notifs.GetByUserIDAndName(f.user.ID, ProgressNotification)
	require.NoError(t, err)
	assert.Equal(t, float64(40), n.Payload["progress"])
	assert.Equal(t, job.ID, n.Payload["job_id"])

	reloaded, err := f.jobs.GetJob(f.user.ID, job.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Complete)
}

func TestReportProgressHundredCompletesJob(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)

	require.NoError(t, f.jobs.ReportProgress(ctx, job.ID, 100))

	reloaded, err := f.jobs.GetJob(f.user.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Complete)

	n, err := f.notifs.GetByUserIDAndName(f.user.ID, ProgressNotification)
	require.NoError(t, err)
	assert.Equal(t, float64(100), n.Payload["progress"])
}

func TestReportProgressSurvivesMissingLiveHandle(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)

	// Wipe the side-channel; the durable transaction must still land.
	f.queue.Forget(job.ID)
	require.NoError(t, f.jobs.ReportProgress(ctx, job.ID, 100))

	reloaded, err := f.jobs.GetJob(f.user.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Complete)
}

func TestProgressDefaultsToHundredWithoutHandle(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)
	require.NoError(t, f.jobs.ReportProgress(ctx, job.ID, 30))

	f.queue.Forget(job.ID)

	// A wiped side-channel reads as finished even though the durable
	// record says otherwise; Complete stays the authoritative flag.
	assert.Equal(t, 100, f.jobs.Progress(ctx, job))
	reloaded, err := f.jobs.GetJob(f.user.ID, job.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Complete)
}

func TestActiveJobFiltering(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	active, err := f.jobs.ActiveJob(f.user.ID, "export_posts")
	require.NoError(t, err)
	assert.Nil(t, active)

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)

	active, err = f.jobs.ActiveJob(f.user.ID, "export_posts")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, job.ID, active.ID)

	require.NoError(t, f.jobs.ReportProgress(ctx, job.ID, 100))

	active, err = f.jobs.ActiveJob(f.user.ID, "export_posts")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestGetJobEnforcesOwnership(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	mallory := createTestUser(t, f.db, "mallory")

	job, err := f.jobs.Launch(ctx, f.user, "export_posts", "Exporting posts...")
	require.NoError(t, err)

	_, err = f.jobs.GetJob(mallory.ID, job.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
