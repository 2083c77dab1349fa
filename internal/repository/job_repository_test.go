package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"escp-service/internal/model"
)

func newJob(status model.JobStatus, bytes int) *model.PrintJob {
	return &model.PrintJob{
		ID:        uuid.New(),
		Pins:      24,
		Bytes:     bytes,
		Status:    status,
		StartedAt: time.Now(),
	}
}

func TestJobRepository_CreateGetUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewJobRepository(10, zap.NewNop())

	job := newJob(model.JobStatusPending, 12)
	require.NoError(t, repo.Create(ctx, job))
	assert.Error(t, repo.Create(ctx, job), "duplicate id")

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)

	// stored copies are isolated from the caller
	got.Status = model.JobStatusFailed
	again, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPending, again.Status)

	job.Status = model.JobStatusSuccess
	require.NoError(t, repo.Update(ctx, job))
	again, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusSuccess, again.Status)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newJob(model.JobStatusPending, 0)), ErrJobNotFound)
}

func TestJobRepository_EvictsOldest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewJobRepository(2, zap.NewNop())

	first := newJob(model.JobStatusSuccess, 1)
	second := newJob(model.JobStatusSuccess, 2)
	third := newJob(model.JobStatusFailed, 3)
	for _, j := range []*model.PrintJob{first, second, third} {
		require.NoError(t, repo.Create(ctx, j))
	}

	_, err := repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	jobs, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, third.ID, jobs[0].ID, "newest first")
	assert.Equal(t, second.ID, jobs[1].ID)
}

func TestJobRepository_ListFilterAndStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewJobRepository(0, zap.NewNop())

	require.NoError(t, repo.Create(ctx, newJob(model.JobStatusSuccess, 10)))
	require.NoError(t, repo.Create(ctx, newJob(model.JobStatusFailed, 5)))
	require.NoError(t, repo.Create(ctx, newJob(model.JobStatusSuccess, 7)))

	failed := model.JobStatusFailed
	jobs, err := repo.List(ctx, &JobFilter{Status: &failed})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 5, jobs[0].Bytes)

	jobs, err = repo.List(ctx, &JobFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 7, jobs[0].Bytes)

	stats, err := repo.GetJobStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 2, stats.SuccessfulJobs)
	assert.Equal(t, 1, stats.FailedJobs)
	assert.Equal(t, int64(17), stats.BytesSent)
}
