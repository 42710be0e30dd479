// Package http provides HTTP handlers for structural and payment tokenization.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/converso/piivault/internal/httputil"
	"github.com/converso/piivault/internal/tokenization/http/dto"
	tokenizationUseCase "github.com/converso/piivault/internal/tokenization/usecase"
	customValidation "github.com/converso/piivault/internal/validation"
)

// TokenizationHandler handles HTTP requests for tokenization operations.
// Coordinates user data and payment tokenization with their use cases.
type TokenizationHandler struct {
	userDataTokenizer tokenizationUseCase.UserDataTokenizer
	paymentTokenizer  tokenizationUseCase.PaymentTokenizer
	logger            *slog.Logger
}

// NewTokenizationHandler creates a new tokenization handler with required dependencies.
func NewTokenizationHandler(
	userDataTokenizer tokenizationUseCase.UserDataTokenizer,
	paymentTokenizer tokenizationUseCase.PaymentTokenizer,
	logger *slog.Logger,
) *TokenizationHandler {
	return &TokenizationHandler{
		userDataTokenizer: userDataTokenizer,
		paymentTokenizer:  paymentTokenizer,
		logger:            logger,
	}
}

// UserDataHandler replaces sensitive leaves of a structured record with
// ephemeral placeholders.
// POST /v1/tokenization/user-data
// Returns 200 OK with the tokenized record and the placeholder map.
func (h *TokenizationHandler) UserDataHandler(c *gin.Context) {
	var req dto.TokenizeUserDataRequest

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
	result, err := h.userDataTokenizer.TokenizeUserData(req.Data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapUserDataResultToResponse(result))
}

// PaymentHandler replaces payment fields of a record with stored secure tokens.
// POST /v1/tokenization/payment
// A failed critical field aborts the whole request; failed non-critical fields
// are reported in failed_fields with their original values kept.
func (h *TokenizationHandler) PaymentHandler(c *gin.Context) {
	var req dto.TokenizePaymentRequest

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
	result, err := h.paymentTokenizer.TokenizePaymentData(
		c.Request.Context(),
		req.Record,
		req.MerchantID,
		req.OwnerID,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.MapPaymentResultToResponse(result))
}
