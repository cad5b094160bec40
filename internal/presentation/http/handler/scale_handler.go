package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mwinzi/freshmart-api/internal/application/service"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/response"
)

// ScaleHandler handles weighing scale endpoints
type ScaleHandler struct {
	scaleService *service.ScaleService
}

// NewScaleHandler creates a new scale handler
func NewScaleHandler(scaleService *service.ScaleService) *ScaleHandler {
	return &ScaleHandler{scaleService: scaleService}
}

// Status handles GET /api/v1/scale/status
func (h *ScaleHandler) Status(c *gin.Context) {
	response.OK(c, "Scale status", h.scaleService.Status())
}

// Weight handles GET /api/v1/scale/weight
func (h *ScaleHandler) Weight(c *gin.Context) {
	reading, err := h.scaleService.ReadWeight(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if reading == nil {
		response.OK(c, "No usable weight", gin.H{"usable": false})
		return
	}
	response.OK(c, "Weight read", gin.H{"usable": true, "weight": reading.Weight})
}
