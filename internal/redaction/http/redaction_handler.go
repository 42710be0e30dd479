// Package http provides HTTP handlers for text redaction and conversation sanitization.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/converso/piivault/internal/httputil"
	"github.com/converso/piivault/internal/redaction/http/dto"
	redactionUseCase "github.com/converso/piivault/internal/redaction/usecase"
	customValidation "github.com/converso/piivault/internal/validation"
)

// RedactionHandler handles HTTP requests for redaction operations.
// Coordinates query redaction, response sanitization, and conversation
// sanitization with the redaction use cases.
type RedactionHandler struct {
	redactor  redactionUseCase.Redactor
	sanitizer redactionUseCase.ConversationSanitizer
	logger    *slog.Logger
}

// NewRedactionHandler creates a new redaction handler with required dependencies.
func NewRedactionHandler(
	redactor redactionUseCase.Redactor,
	sanitizer redactionUseCase.ConversationSanitizer,
	logger *slog.Logger,
) *RedactionHandler {
	return &RedactionHandler{
		redactor:  redactor,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// RedactQueryHandler replaces detected PII in free text with recoverable placeholders.
// POST /v1/redaction/query
// Returns 200 OK with the sanitized text and the placeholder-to-original map.
func (h *RedactionHandler) RedactQueryHandler(c *gin.Context) {
	var req dto.RedactQueryRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	result, err := h.redactor.RedactQuery(req.Text)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapRedactionResultToResponse(result))
}

// SanitizeResponseHandler scrubs detected PII from model output with a fixed marker.
// POST /v1/redaction/response
// Returns 200 OK with the sanitized text; originals are not recoverable.
func (h *RedactionHandler) SanitizeResponseHandler(c *gin.Context) {
	var req dto.SanitizeResponseRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	sanitized := h.redactor.SanitizeResponse(req.Text)

	// Return response
	c.JSON(http.StatusOK, dto.SanitizeResponseResponse{SanitizedText: sanitized})
}

// SanitizeConversationHandler sanitizes a conversation record before archival.
// POST /v1/redaction/conversation
// Returns 200 OK with the sanitized record and a redaction summary.
func (h *RedactionHandler) SanitizeConversationHandler(c *gin.Context) {
	var req dto.SanitizeConversationRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	result, err := h.sanitizer.SanitizeConversationLog(req.Conversation)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapConversationResultToResponse(result))
}
