// internal/service/print_service.go
package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"escp-service/internal/config"
	"escp-service/internal/model"
	"escp-service/internal/protocol"
	"escp-service/internal/repository"
	"escp-service/internal/utils"
	"escp-service/pkg/escp"
	"escp-service/pkg/escp/charset"
)

var (
	// ErrTransport marks a job that was built but could not be delivered
	ErrTransport = errors.New("transport failure")
	// ErrNoTransports is returned when a job is submitted with nothing to send it to
	ErrNoTransports = errors.New("no transports configured")
)

// EventPublisher receives job lifecycle events
type EventPublisher interface {
	Publish(event model.JobEvent)
}

// PrintService builds ESC/P jobs and delivers them to every configured transport
type PrintService struct {
	printer    config.PrinterConfig
	transports []protocol.Transport
	jobRepo    repository.JobRepository
	events     EventPublisher
	logger     *utils.ServiceLogger

	// one job at a time reaches the printers
	sendMutex sync.Mutex
}

// NewPrintService creates a new print service instance. events may be nil.
func NewPrintService(
	printer config.PrinterConfig,
	transports []protocol.Transport,
	jobRepo repository.JobRepository,
	events EventPublisher,
	logger *zap.Logger,
) *PrintService {
	return &PrintService{
		printer:    printer,
		transports: transports,
		jobRepo:    jobRepo,
		events:     events,
		logger:     utils.NewServiceLogger(logger, "print-service"),
	}
}

// Printer returns the configured printer defaults
func (s *PrintService) Printer() config.PrinterConfig {
	return s.printer
}

// Build encodes a request without sending it
func (s *PrintService) Build(req *model.PrintRequest) (*escp.Builder, error) {
	return BuildRequest(req, s.printer.CodePage)
}

// Preview encodes a request and returns the bytes as hex and as a dump
func (s *PrintService) Preview(req *model.PrintRequest) (*model.PreviewResponse, error) {
	b, err := s.Build(req)
	if err != nil {
		return nil, err
	}
	data := b.Bytes()
	return &model.PreviewResponse{
		Pins:    req.Pins,
		Variant: b.Variant().String(),
		Bytes:   len(data),
		Hex:     hex.EncodeToString(data),
		Dump:    hex.Dump(data),
	}, nil
}

// Submit builds a request and prints it. A build failure returns no job.
func (s *PrintService) Submit(ctx context.Context, req *model.PrintRequest) (*model.PrintJob, error) {
	b, err := s.Build(req)
	if err != nil {
		s.logger.Warn("Rejected print request", zap.Int("pins", req.Pins), zap.Error(err))
		return nil, err
	}
	return s.Print(ctx, req.Pins, b.Bytes())
}

// Print sends an encoded job to all transports concurrently. Every
// transport is attempted; the returned error wraps ErrTransport and the
// first transport failure.
func (s *PrintService) Print(ctx context.Context, pins int, data []byte) (*model.PrintJob, error) {
	if len(s.transports) == 0 {
		return nil, ErrNoTransports
	}

	variant, err := escp.VariantForPins(pins)
	if err != nil {
		return nil, err
	}

	job := &model.PrintJob{
		ID:        uuid.New(),
		Pins:      pins,
		Variant:   variant.String(),
		Bytes:     len(data),
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	jobLogger := utils.NewJobLogger(s.logger.Logger, job.ID.String(), pins)
	jobLogger.Start(zap.Int("transports", len(s.transports)))
	s.publish(model.NewJobEvent(model.EventJobStarted, job.ID, "", model.JSONObject{
		"pins":  pins,
		"bytes": len(data),
	}))

	s.sendMutex.Lock()
	job.Status = model.JobStatusProcessing
	results := make([]model.TransportResult, len(s.transports))

	var g errgroup.Group
	for i, t := range s.transports {
		i, t := i, t // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			start := time.Now()
			err := deliver(ctx, t, data)

			results[i] = model.TransportResult{
				Transport:  t.Name(),
				Success:    err == nil,
				DurationMs: int(time.Since(start).Milliseconds()),
			}
			if err != nil {
				results[i].Error = err.Error()
				s.publish(model.NewJobEvent(model.EventTransportFailed, job.ID, t.Name(), model.JSONObject{
					"error": err.Error(),
				}))
				return fmt.Errorf("%s: %w", t.Name(), err)
			}

			s.publish(model.NewJobEvent(model.EventTransportSent, job.ID, t.Name(), model.JSONObject{
				"bytes": len(data),
			}))
			return nil
		})
	}
	sendErr := g.Wait()
	s.sendMutex.Unlock()

	job.Results = results
	if sendErr != nil {
		sendErr = fmt.Errorf("%w: %w", ErrTransport, sendErr)
	}
	job.Complete(sendErr)

	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("Failed to update job", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	if sendErr != nil {
		jobLogger.Error(sendErr)
		s.publish(model.NewJobEvent(model.EventJobFailed, job.ID, "", model.JSONObject{
			"error": sendErr.Error(),
		}))
		return job, sendErr
	}

	jobLogger.Success(len(data))
	s.publish(model.NewJobEvent(model.EventJobCompleted, job.ID, "", model.JSONObject{
		"bytes":       len(data),
		"duration_ms": *job.DurationMs,
	}))
	return job, nil
}

// deliver opens the transport if needed and sends data
func deliver(ctx context.Context, t protocol.Transport, data []byte) error {
	if err := t.Open(ctx); err != nil {
		return err
	}
	return t.Send(ctx, data)
}

// GetJob retrieves a job from the history
func (s *PrintService) GetJob(ctx context.Context, id uuid.UUID) (*model.PrintJob, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// ListJobs lists recent jobs, newest first
func (s *PrintService) ListJobs(ctx context.Context, filter *repository.JobFilter) ([]*model.PrintJob, error) {
	return s.jobRepo.List(ctx, filter)
}

// GetJobStats summarises the job history
func (s *PrintService) GetJobStats(ctx context.Context) (*repository.JobStats, error) {
	return s.jobRepo.GetJobStats(ctx)
}

// TransportStats returns statistics keyed by transport name
func (s *PrintService) TransportStats() map[string]protocol.Stats {
	stats := make(map[string]protocol.Stats, len(s.transports))
	for _, t := range s.transports {
		stats[t.Name()] = t.Stats()
	}
	return stats
}

// DescribeVariant lists what a printer with the given pin count accepts
func DescribeVariant(pins int) (*model.VariantInfo, error) {
	v, err := escp.VariantForPins(pins)
	if err != nil {
		return nil, err
	}
	table, err := escp.NewCommandTable(v)
	if err != nil {
		return nil, err
	}

	info := &model.VariantInfo{
		Pins:       pins,
		Variant:    v.String(),
		LineSpaces: v.LineSpacings(),
	}
	for _, cmd := range table.Commands() {
		info.Commands = append(info.Commands, cmd.String())
	}
	for _, face := range v.Typefaces() {
		info.Typefaces = append(info.Typefaces, face.String())
	}
	for _, cp := range charset.CodePages() {
		info.CodePages = append(info.CodePages, cp.Name())
	}
	for _, set := range charset.Sets() {
		info.Charsets = append(info.Charsets, set.String())
	}
	return info, nil
}

// Close closes every transport, returning the first error
func (s *PrintService) Close() error {
	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()

	var firstErr error
	for _, t := range s.transports {
		if err := t.Close(); err != nil {
			s.logger.Error("Failed to close transport", zap.String("transport", t.Name()), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *PrintService) publish(event model.JobEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}
