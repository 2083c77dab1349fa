// internal/repository/interfaces.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"escp-service/internal/model"
)

// ErrJobNotFound is returned when a job ID is not in the history
var ErrJobNotFound = errors.New("job not found")

// JobRepository defines print job history operations
type JobRepository interface {
	// CRUD operations
	Create(ctx context.Context, job *model.PrintJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PrintJob, error)
	Update(ctx context.Context, job *model.PrintJob) error

	// Listing
	List(ctx context.Context, filter *JobFilter) ([]*model.PrintJob, error)
	GetJobStats(ctx context.Context) (*JobStats, error)
}

// JobFilter represents job listing filters
type JobFilter struct {
	Status *model.JobStatus `json:"status,omitempty"`
	Limit  int              `json:"limit"`
}

// JobStats represents job statistics over the retained history
type JobStats struct {
	TotalJobs      int                     `json:"total_jobs"`
	SuccessfulJobs int                     `json:"successful_jobs"`
	FailedJobs     int                     `json:"failed_jobs"`
	BytesSent      int64                   `json:"bytes_sent"`
	ByStatus       map[model.JobStatus]int `json:"by_status"`
}
