package handler

import (
	"net/http"

	appidentity "github.com/fabos/server/internal/application/identity"
	"github.com/fabos/server/internal/domain/identity"
	"github.com/fabos/server/internal/interfaces/http/dto"
	"github.com/fabos/server/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the client-chosen key that makes workspace
// creation safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

// SignupHandler handles workspace signup HTTP requests
type SignupHandler struct {
	BaseHandler
	signupService *appidentity.SignupService
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(signupService *appidentity.SignupService) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
	}
}

// Validate runs the signup conflict checks without creating anything.
// The result reports the first conflict found, in check order: email,
// company code, then email domain.
func (h *SignupHandler) Validate(c *gin.Context) {
	var req identity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.signupService.Validate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create provisions a new workspace. Conflicts detected at write time are
// returned with the full validation payload so the client can recover the
// same way it would from a validation response.
func (h *SignupHandler) Create(c *gin.Context) {
	var req identity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	outcome, err := h.signupService.CreateTenant(c.Request.Context(), req, idempotencyKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !outcome.Creation.Success {
		// A failed outcome with validation details is a conflict the
		// client can resolve; without them it is a provisioning failure
		status := http.StatusConflict
		code := dto.ErrCodeConflict
		if outcome.Validation == nil {
			status = http.StatusInternalServerError
			code = dto.ErrCodeInternal
		}
		c.JSON(status, dto.Response{
			Success: false,
			Data:    outcome,
			Error: &dto.ErrorInfo{
				Code:      code,
				Message:   outcome.Creation.ErrorMessage,
				RequestID: getRequestID(c),
			},
		})
		return
	}

	h.Created(c, outcome)
}

// SuggestCodes returns available company code suggestions derived from a
// taken code
func (h *SignupHandler) SuggestCodes(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Company code is required")
		return
	}

	suggestions, err := h.signupService.SuggestCodes(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"suggestions": suggestions})
}
