package handler

import (
	appqdocs "github.com/fabos/server/internal/application/qdocs"
	"github.com/fabos/server/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RevisionHandler handles drawing revision workflow HTTP requests
type RevisionHandler struct {
	BaseHandler
	service *appqdocs.Service
}

// NewRevisionHandler creates a new revision handler
func NewRevisionHandler(service *appqdocs.Service) *RevisionHandler {
	return &RevisionHandler{service: service}
}

func (h *RevisionHandler) revisionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid revision ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create registers a new drawing revision in Draft status
func (h *RevisionHandler) Create(c *gin.Context) {
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

	var req appqdocs.CreateRevisionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.CreateRevision(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID returns a single revision with its allowed transitions
func (h *RevisionHandler) GetByID(c *gin.Context) {
	id, ok := h.revisionID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListByDrawing lists revisions of a drawing
func (h *RevisionHandler) ListByDrawing(c *gin.Context) {
	drawingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid drawing ID")
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := appqdocs.RevisionFilter{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
		Status:   c.Query("status"),
	}

	result, err := h.service.ListByDrawing(c.Request.Context(), tenantID, drawingID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transition moves a revision to a new workflow status, recording the
// change in the audit trail
func (h *RevisionHandler) Transition(c *gin.Context) {
	id, ok := h.revisionID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appqdocs.TransitionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Transition(c.Request.Context(), tenantID, actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AuditTrail returns a revision's status change history, oldest first
func (h *RevisionHandler) AuditTrail(c *gin.Context) {
	id, ok := h.revisionID(c)
	if !ok {
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.service.AuditTrail(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ClassifyImport checks parsed drawing-list rows against the part, unit and
// parse-status vocabularies before an import session is accepted
func (h *RevisionHandler) ClassifyImport(c *gin.Context) {
	var req struct {
		Rows []appqdocs.ImportRowInput `json:"rows" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	h.Success(c, h.service.ClassifyImportRows(req.Rows))
}
