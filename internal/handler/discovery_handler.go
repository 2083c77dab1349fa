// internal/handler/discovery_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"escp-service/internal/service"
	"escp-service/internal/utils"
)

// DiscoveryHandler handles printer discovery requests
type DiscoveryHandler struct {
	discoveryService *service.DiscoveryService
	logger           *utils.ServiceLogger
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(discoveryService *service.DiscoveryService, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryService: discoveryService,
		logger:           utils.NewServiceLogger(logger, "discovery-handler"),
	}
}

// RegisterRoutes registers discovery routes
func (h *DiscoveryHandler) RegisterRoutes(router *gin.RouterGroup) {
	discovery := router.Group("/discovery")
	{
		discovery.GET("/scan", h.ScanPrinters)
		discovery.GET("/scanners", h.GetScanners)
	}
}

// ScanPrinters scans for attached printers
// @Summary Scan for printers
// @Description Lists USB, serial and network printers with a suggested transport entry for each
// @Tags Discovery
// @Produce json
// @Param type query string false "Scanner" Enums(usb, serial, tcp)
// @Param hosts query string false "Comma separated hosts to probe on port 9100"
// @Success 200 {object} utils.APIResponse{data=service.ScanResult}
// @Failure 400 {object} utils.APIResponse
// @Router /discovery/scan [get]
func (h *DiscoveryHandler) ScanPrinters(c *gin.Context) {
	req := &service.ScanRequest{
		Type: strings.ToLower(c.Query("type")),
	}
	if hosts := c.Query("hosts"); hosts != "" {
		for _, host := range strings.Split(hosts, ",") {
			if host = strings.TrimSpace(host); host != "" {
				req.Hosts = append(req.Hosts, host)
			}
		}
	}

	result, err := h.discoveryService.Scan(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to scan for printers", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scan completed successfully", result)
}

// GetScanners lists the available scanner types
// @Summary List scanners
// @Tags Discovery
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]string}
// @Router /discovery/scanners [get]
func (h *DiscoveryHandler) GetScanners(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Scanners retrieved successfully", h.discoveryService.Scanners())
}
