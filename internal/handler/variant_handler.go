// internal/handler/variant_handler.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"escp-service/internal/model"
	"escp-service/internal/service"
	"escp-service/internal/utils"
)

// supportedPins lists the pin counts the service can drive
var supportedPins = []int{9, 24, 48}

// VariantHandler reports printer capabilities and transport state
type VariantHandler struct {
	printService *service.PrintService
	logger       *utils.ServiceLogger
}

// NewVariantHandler creates a new variant handler
func NewVariantHandler(printService *service.PrintService, logger *zap.Logger) *VariantHandler {
	return &VariantHandler{
		printService: printService,
		logger:       utils.NewServiceLogger(logger, "variant-handler"),
	}
}

// RegisterRoutes registers capability routes
func (h *VariantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/variants", h.ListVariants)
	router.GET("/variants/:pins", h.GetVariant)
	router.GET("/transports", h.GetTransports)
}

// ListVariants describes every supported printer family
// @Summary List printer variants
// @Tags Printer
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]model.VariantInfo}
// @Router /variants [get]
func (h *VariantHandler) ListVariants(c *gin.Context) {
	infos := make([]*model.VariantInfo, 0, len(supportedPins))
	for _, pins := range supportedPins {
		info, err := service.DescribeVariant(pins)
		if err != nil {
			h.logger.Error("Failed to describe variant", zap.Int("pins", pins), zap.Error(err))
			respondError(c, "Failed to describe variants", err)
			return
		}
		infos = append(infos, info)
	}

	utils.SuccessResponse(c, http.StatusOK, "Variants retrieved successfully", infos)
}

// GetVariant lists the directives a printer with the given pin count accepts
// @Summary Describe a printer variant
// @Tags Printer
// @Produce json
// @Param pins path int true "Pin count" Enums(9, 24, 48)
// @Success 200 {object} utils.APIResponse{data=model.VariantInfo}
// @Failure 400 {object} utils.APIResponse
// @Router /variants/{pins} [get]
func (h *VariantHandler) GetVariant(c *gin.Context) {
	pins, err := strconv.Atoi(c.Param("pins"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid pin count", err)
		return
	}

	info, err := service.DescribeVariant(pins)
	if err != nil {
		respondError(c, "Unsupported pin count", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Variant retrieved successfully", info)
}

// GetTransports reports per-transport delivery statistics
// @Summary Transport statistics
// @Tags Printer
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /transports [get]
func (h *VariantHandler) GetTransports(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Transports retrieved successfully", h.printService.TransportStats())
}
