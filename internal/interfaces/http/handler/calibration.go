package handler

import (
	appcal "github.com/fabos/server/internal/application/calibration"
	"github.com/fabos/server/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CalibrationHandler handles drawing calibration HTTP requests
type CalibrationHandler struct {
	BaseHandler
	service *appcal.Service
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(service *appcal.Service) *CalibrationHandler {
	return &CalibrationHandler{service: service}
}

// drawingID parses the :id path parameter
func (h *CalibrationHandler) drawingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid drawing ID")
		return uuid.Nil, false
	}
	return id, true
}

// Compute calculates a scale from two points and a known distance without
// persisting anything
func (h *CalibrationHandler) Compute(c *gin.Context) {
	var req appcal.ComputeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	h.Success(c, h.service.Compute(req))
}

// Activate persists a two-point calibration for a drawing and makes it the
// active one
func (h *CalibrationHandler) Activate(c *gin.Context) {
	drawingID, ok := h.drawingID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcal.ActivateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.DrawingID = drawingID

	result, err := h.service.Activate(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ApplyPreset calibrates a drawing from a standard scale preset
func (h *CalibrationHandler) ApplyPreset(c *gin.Context) {
	drawingID, ok := h.drawingID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcal.ApplyPresetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.DrawingID = drawingID

	result, err := h.service.ApplyPreset(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetActive returns the active calibration for a drawing
func (h *CalibrationHandler) GetActive(c *gin.Context) {
	drawingID, ok := h.drawingID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.service.GetActive(c.Request.Context(), tenantID, drawingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// History lists all calibrations ever recorded for a drawing, newest first
func (h *CalibrationHandler) History(c *gin.Context) {
	drawingID, ok := h.drawingID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter appcal.HistoryFilter
	filter.Page = intQuery(c, "page", 1)
	filter.PageSize = intQuery(c, "page_size", 20)

	result, err := h.service.History(c.Request.Context(), tenantID, drawingID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Convert translates between pixel and real-world distances using the
// drawing's active calibration
func (h *CalibrationHandler) Convert(c *gin.Context) {
	drawingID, ok := h.drawingID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcal.ConvertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Convert(c.Request.Context(), tenantID, drawingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Presets returns the standard drawing scale presets
func (h *CalibrationHandler) Presets(c *gin.Context) {
	h.Success(c, h.service.Presets())
}
