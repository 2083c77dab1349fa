// internal/repository/job_repository.go
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"escp-service/internal/model"
)

// DefaultHistorySize is the number of jobs kept when no size is given
const DefaultHistorySize = 200

// memoryJobRepository keeps the most recent jobs in memory, oldest evicted first
type memoryJobRepository struct {
	jobs   map[uuid.UUID]*model.PrintJob
	order  []uuid.UUID
	size   int
	mutex  sync.RWMutex
	logger *zap.Logger
}

// NewJobRepository creates an in-memory job history holding up to size jobs
func NewJobRepository(size int, logger *zap.Logger) JobRepository {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &memoryJobRepository{
		jobs:   make(map[uuid.UUID]*model.PrintJob, size),
		size:   size,
		logger: logger,
	}
}

// Create stores a new job
func (r *memoryJobRepository) Create(ctx context.Context, job *model.PrintJob) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.jobs[job.ID]; ok {
		return fmt.Errorf("job %s already exists", job.ID)
	}

	if len(r.order) >= r.size {
		evicted := r.order[0]
		r.order = r.order[1:]
		delete(r.jobs, evicted)
		r.logger.Debug("Evicted job from history", zap.String("job_id", evicted.String()))
	}

	r.jobs[job.ID] = cloneJob(job)
	r.order = append(r.order, job.ID)
	return nil
}

// GetByID retrieves a job by ID
func (r *memoryJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PrintJob, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return cloneJob(job), nil
}

// Update replaces a stored job
func (r *memoryJobRepository) Update(ctx context.Context, job *model.PrintJob) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, job.ID)
	}
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

// List returns jobs newest first
func (r *memoryJobRepository) List(ctx context.Context, filter *JobFilter) ([]*model.PrintJob, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	limit := len(r.order)
	if filter != nil && filter.Limit > 0 && filter.Limit < limit {
		limit = filter.Limit
	}

	jobs := make([]*model.PrintJob, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(jobs) < limit; i-- {
		job := r.jobs[r.order[i]]
		if filter != nil && filter.Status != nil && job.Status != *filter.Status {
			continue
		}
		jobs = append(jobs, cloneJob(job))
	}
	return jobs, nil
}

// GetJobStats summarises the retained history
func (r *memoryJobRepository) GetJobStats(ctx context.Context) (*JobStats, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stats := &JobStats{
		TotalJobs: len(r.jobs),
		ByStatus:  make(map[model.JobStatus]int),
	}
	for _, job := range r.jobs {
		stats.ByStatus[job.Status]++
		switch job.Status {
		case model.JobStatusSuccess:
			stats.SuccessfulJobs++
			stats.BytesSent += int64(job.Bytes)
		case model.JobStatusFailed:
			stats.FailedJobs++
		}
	}
	return stats, nil
}

func cloneJob(job *model.PrintJob) *model.PrintJob {
	c := *job
	if job.Results != nil {
		c.Results = append([]model.TransportResult(nil), job.Results...)
	}
	return &c
}
