// Package http provides HTTP handlers for secure token operations.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/converso/piivault/internal/httputil"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
	"github.com/converso/piivault/internal/tokens/http/dto"
	tokensUseCase "github.com/converso/piivault/internal/tokens/usecase"
	customValidation "github.com/converso/piivault/internal/validation"
)

// TokenHandler handles HTTP requests for secure token operations.
// Coordinates create, retrieve, and delete operations with SecureTokenUseCase.
type TokenHandler struct {
	tokenUseCase tokensUseCase.SecureTokenUseCase
	defaultTTL   time.Duration
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
// defaultTTL applies to create requests that omit an explicit TTL; zero means
// tokens never expire unless the request says otherwise.
func NewTokenHandler(
	tokenUseCase tokensUseCase.SecureTokenUseCase,
	defaultTTL time.Duration,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		defaultTTL:   defaultTTL,
		logger:       logger,
	}
}

// CreateHandler mints a secure token for the given value.
// POST /v1/tokens
// Returns 201 Created with the token id.
func (h *TokenHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTokenRequest

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

	ttl := h.defaultTTL
	if req.TTL != nil {
		ttl = time.Duration(*req.TTL) * time.Second
	}

	// Call use case
	tokenID, err := h.tokenUseCase.CreateSecureToken(c.Request.Context(), tokensUseCase.CreateTokenInput{
		Plaintext:  req.Value,
		DataType:   tokensDomain.DataType(req.DataType),
		MerchantID: req.MerchantID,
		OwnerID:    req.OwnerID,
		TTL:        ttl,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusCreated, dto.CreateTokenResponse{TokenID: tokenID})
}

// RetrieveHandler returns the original value behind a token.
// POST /v1/tokens/retrieve
// A missing token, a token owned by another merchant, an expired token, and an
// undecryptable record all produce the same 404 response.
func (h *TokenHandler) RetrieveHandler(c *gin.Context) {
	var req dto.RetrieveTokenRequest

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
	value, err := h.tokenUseCase.RetrieveFromToken(c.Request.Context(), req.TokenID, req.MerchantID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response
	c.JSON(http.StatusOK, dto.RetrieveTokenResponse{Value: value})
}

// DeleteHandler removes a token and its encrypted value.
// POST /v1/tokens/delete
// Returns 204 No Content on success, including when the token did not exist.
func (h *TokenHandler) DeleteHandler(c *gin.Context) {
	var req dto.DeleteTokenRequest

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
	if err := h.tokenUseCase.DeleteToken(c.Request.Context(), req.TokenID, req.MerchantID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content
	c.Data(http.StatusNoContent, "application/json", nil)
}
