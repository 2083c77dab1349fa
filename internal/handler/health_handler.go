// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"escp-service/internal/config"
	"escp-service/internal/protocol"
	"escp-service/internal/utils"
	"escp-service/pkg/escp"
)

// TransportReporter exposes per-transport statistics
type TransportReporter interface {
	TransportStats() map[string]protocol.Stats
}

// HealthHandler handles health check requests
type HealthHandler struct {
	transports TransportReporter
	config     *config.Config
	logger     *utils.ServiceLogger
	startedAt  time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(transports TransportReporter, config *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		transports: transports,
		config:     config,
		logger:     utils.NewServiceLogger(logger, "health-handler"),
		startedAt:  time.Now(),
	}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.HealthCheck)
	router.GET("/ready", h.ReadinessCheck)
	router.GET("/live", h.LivenessCheck)
}

// HealthCheck performs general health check
// @Summary Health check
// @Description Get overall service health including command tables and transports
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.config.App.Name,
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Checks:    make(map[string]CheckResult),
	}

	// Command tables are built once per variant; a gap is a build defect
	for _, v := range []escp.Variant{escp.ESCP, escp.ESCP2} {
		name := "command_table_" + v.String()
		if _, err := escp.NewCommandTable(v); err != nil {
			health.Status = "unhealthy"
			health.Checks[name] = CheckResult{Status: "unhealthy", Message: err.Error()}
			h.logger.Error("Command table check failed", zap.String("variant", v.String()), zap.Error(err))
			continue
		}
		health.Checks[name] = CheckResult{Status: "healthy"}
	}

	stats := h.transports.TransportStats()
	if len(stats) == 0 {
		health.Checks["transports"] = CheckResult{
			Status:  "degraded",
			Message: "No transports configured",
		}
	}
	for name, s := range stats {
		status := "healthy"
		if s.ErrorCount > 0 && !s.IsConnected {
			status = "degraded"
		}
		health.Checks["transport_"+name] = CheckResult{
			Status: status,
			Data: map[string]interface{}{
				"connected":     s.IsConnected,
				"send_count":    s.SendCount,
				"error_count":   s.ErrorCount,
				"bytes_written": s.BytesWritten,
				"last_activity": s.LastActivity,
			},
		}
	}

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}

// ReadinessCheck for Kubernetes readiness probe
// @Summary Readiness check
// @Description Check if service has somewhere to send jobs
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is ready"
// @Failure 503 {object} object{status=string,reason=string} "Service is not ready"
// @Router /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if len(h.transports.TransportStats()) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "no transports configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessCheck for Kubernetes liveness probe
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is alive"
// @Router /live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents individual check result
type CheckResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
