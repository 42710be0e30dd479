package usecase

import (
	"context"
	"time"

	"github.com/converso/piivault/internal/metrics"
)

// secureTokenUseCaseWithMetrics decorates SecureTokenUseCase with metrics
// instrumentation.
type secureTokenUseCaseWithMetrics struct {
	next    SecureTokenUseCase
	metrics metrics.BusinessMetrics
}

// NewSecureTokenUseCaseWithMetrics wraps a SecureTokenUseCase with metrics recording.
func NewSecureTokenUseCaseWithMetrics(
	useCase SecureTokenUseCase,
	m metrics.BusinessMetrics,
) SecureTokenUseCase {
	return &secureTokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateSecureToken records metrics for token mint operations.
func (s *secureTokenUseCaseWithMetrics) CreateSecureToken(
	ctx context.Context,
	input CreateTokenInput,
) (string, error) {
	start := time.Now()
	tokenID, err := s.next.CreateSecureToken(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "tokens", "create", status)
	s.metrics.RecordDuration(ctx, "tokens", "create", time.Since(start), status)

	return tokenID, err
}

// RetrieveFromToken records metrics for token retrieval operations.
func (s *secureTokenUseCaseWithMetrics) RetrieveFromToken(
	ctx context.Context,
	tokenID, merchantID string,
) (string, error) {
	start := time.Now()
	plaintext, err := s.next.RetrieveFromToken(ctx, tokenID, merchantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "tokens", "retrieve", status)
	s.metrics.RecordDuration(ctx, "tokens", "retrieve", time.Since(start), status)

	return plaintext, err
}

// DeleteToken records metrics for token deletion operations.
func (s *secureTokenUseCaseWithMetrics) DeleteToken(
	ctx context.Context,
	tokenID, merchantID string,
) error {
	start := time.Now()
	err := s.next.DeleteToken(ctx, tokenID, merchantID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "tokens", "delete", status)
	s.metrics.RecordDuration(ctx, "tokens", "delete", time.Since(start), status)

	return err
}

// CleanupExpired records metrics for expired token cleanup operations.
func (s *secureTokenUseCaseWithMetrics) CleanupExpired(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := s.next.CleanupExpired(ctx, days, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "tokens", "cleanup_expired", status)
	s.metrics.RecordDuration(ctx, "tokens", "cleanup_expired", time.Since(start), status)

	return count, err
}
