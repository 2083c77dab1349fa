// internal/handler/job_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"escp-service/internal/model"
	"escp-service/internal/repository"
	"escp-service/internal/service"
	"escp-service/internal/testpage"
	"escp-service/internal/utils"
)

const (
	defaultJobListLimit = 50
	maxJobListLimit     = 200
)

// JobHandler handles print job HTTP requests
type JobHandler struct {
	printService *service.PrintService
	logger       *utils.ServiceLogger
}

// NewJobHandler creates a new job handler
func NewJobHandler(printService *service.PrintService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		printService: printService,
		logger:       utils.NewServiceLogger(logger, "job-handler"),
	}
}

// RegisterRoutes registers job routes
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	jobs := router.Group("/jobs")
	{
		jobs.POST("", h.SubmitJob)
		jobs.POST("/preview", h.PreviewJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/stats", h.GetJobStats)
		jobs.GET("/:id", h.GetJob)
	}

	router.POST("/testpage/:kind", h.PrintTestPage)
}

// SubmitJob builds a job from directives and sends it to every transport
// @Summary Print a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body model.PrintRequest true "Directives"
// @Success 201 {object} utils.APIResponse{data=model.PrintJob}
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse{data=model.PrintJob}
// @Failure 503 {object} utils.APIResponse
// @Router /jobs [post]
func (h *JobHandler) SubmitJob(c *gin.Context) {
	var req model.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.printService.Submit(c.Request.Context(), &req)
	h.respondJob(c, job, err)
}

// PrintTestPage prints a built-in sample
// @Summary Print a sample page
// @Tags Jobs
// @Produce json
// @Param kind path string true "Sample" Enums(page, astronomer)
// @Param pins query int false "Pin count, defaults to the configured printer"
// @Success 201 {object} utils.APIResponse{data=model.PrintJob}
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse{data=model.PrintJob}
// @Router /testpage/{kind} [post]
func (h *JobHandler) PrintTestPage(c *gin.Context) {
	pins := h.printService.Printer().Pins
	if raw := c.Query("pins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid pins", err)
			return
		}
		pins = n
	}

	data, err := testpage.Build(c.Param("kind"), pins)
	if err != nil {
		respondError(c, "Failed to build sample", err)
		return
	}

	job, err := h.printService.Print(c.Request.Context(), pins, data)
	h.respondJob(c, job, err)
}

// respondJob reports a print outcome. A job that was built but not
// delivered is returned alongside the error.
func (h *JobHandler) respondJob(c *gin.Context, job *model.PrintJob, err error) {
	if err == nil {
		utils.SuccessResponse(c, http.StatusCreated, "Job printed successfully", job)
		return
	}

	if job == nil {
		respondError(c, "Failed to print job", err)
		return
	}

	h.logger.Error("Job delivery failed",
		zap.String("job_id", job.ID.String()),
		zap.Error(err),
	)
	status, code := classifyError(err)
	utils.FailureResponse(c, status, code, "Job delivery failed", err, job)
}

// PreviewJob builds a job without sending it
// @Summary Encode a job without printing
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body model.PrintRequest true "Directives"
// @Success 200 {object} utils.APIResponse{data=model.PreviewResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /jobs/preview [post]
func (h *JobHandler) PreviewJob(c *gin.Context) {
	var req model.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	preview, err := h.printService.Preview(&req)
	if err != nil {
		respondError(c, "Failed to build job", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job encoded successfully", preview)
}

// GetJob retrieves a job from the history
// @Summary Get a job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} utils.APIResponse{data=model.PrintJob}
// @Failure 404 {object} utils.APIResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid job ID", err)
		return
	}

	job, err := h.printService.GetJob(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Job not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job retrieved successfully", job)
}

// ListJobs lists recent jobs, newest first
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Param status query string false "Status" Enums(PENDING, PROCESSING, SUCCESS, FAILED)
// @Param limit query int false "Maximum number of jobs"
// @Success 200 {object} utils.APIResponse{data=[]model.PrintJob}
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter, err := parseJobFilter(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	jobs, err := h.printService.ListJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to list jobs", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

func parseJobFilter(c *gin.Context) (*repository.JobFilter, error) {
	filter := &repository.JobFilter{Limit: defaultJobListLimit}

	if raw := c.Query("status"); raw != "" {
		status := model.JobStatus(strings.ToUpper(raw))
		switch status {
		case model.JobStatusPending, model.JobStatusProcessing, model.JobStatusSuccess, model.JobStatusFailed:
			filter.Status = &status
		default:
			return nil, errors.New("unknown status " + raw)
		}
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, errors.New("limit must be a positive integer")
		}
		filter.Limit = min(limit, maxJobListLimit)
	}

	return filter, nil
}

// GetJobStats summarises the job history
// @Summary Job statistics
// @Tags Jobs
// @Produce json
// @Success 200 {object} utils.APIResponse{data=repository.JobStats}
// @Router /jobs/stats [get]
func (h *JobHandler) GetJobStats(c *gin.Context) {
	stats, err := h.printService.GetJobStats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to get job statistics", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job statistics retrieved successfully", stats)
}
