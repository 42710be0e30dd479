// Package http provides the HTTP server, routing, and middleware stack.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/converso/piivault/internal/metrics"
	redactionHTTP "github.com/converso/piivault/internal/redaction/http"
	tokenizationHTTP "github.com/converso/piivault/internal/tokenization/http"
	tokensHTTP "github.com/converso/piivault/internal/tokens/http"
)

// ServerConfig holds the settings the HTTP server needs from the application
// configuration.
type ServerConfig struct {
	Host                    string
	Port                    int
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	CORSEnabled             bool
	CORSAllowOrigins        string
	MetricsEnabled          bool
	MetricsNamespace        string
}

// Server represents the API HTTP server.
type Server struct {
	config              ServerConfig
	server              *http.Server
	logger              *slog.Logger
	tokenHandler        *tokensHTTP.TokenHandler
	redactionHandler    *redactionHTTP.RedactionHandler
	tokenizationHandler *tokenizationHTTP.TokenizationHandler
	metricsProvider     *metrics.Provider
}

// NewServer creates a new HTTP server wired to the given handlers.
// metricsProvider may be nil when metrics are disabled.
func NewServer(
	config ServerConfig,
	logger *slog.Logger,
	tokenHandler *tokensHTTP.TokenHandler,
	redactionHandler *redactionHTTP.RedactionHandler,
	tokenizationHandler *tokenizationHTTP.TokenizationHandler,
	metricsProvider *metrics.Provider,
) *Server {
	return &Server{
		config:              config,
		logger:              logger,
		tokenHandler:        tokenHandler,
		redactionHandler:    redactionHandler,
		tokenizationHandler: tokenizationHandler,
		metricsProvider:     metricsProvider,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with the full middleware stack and all
// API routes. ctx drives the readiness endpoint: once it is cancelled the
// server reports not ready.
func (s *Server) SetupRouter(ctx context.Context) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(uuid.NewString)))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled,
		s.config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.config.RateLimitEnabled {
		router.Use(RateLimitMiddleware(
			ctx,
			s.config.RateLimitRequestsPerSec,
			s.config.RateLimitBurst,
			s.logger,
		))
	}

	if s.config.MetricsEnabled && s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			s.metricsProvider.MeterProvider(),
			s.config.MetricsNamespace,
		))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		select {
		case <-ctx.Done():
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		}
	})

	v1 := router.Group("/v1")
	{
		tokens := v1.Group("/tokens")
		{
			tokens.POST("", s.tokenHandler.CreateHandler)
			tokens.POST("/retrieve", s.tokenHandler.RetrieveHandler)
			tokens.POST("/delete", s.tokenHandler.DeleteHandler)
		}

		redaction := v1.Group("/redaction")
		{
			redaction.POST("/query", s.redactionHandler.RedactQueryHandler)
			redaction.POST("/response", s.redactionHandler.SanitizeResponseHandler)
			redaction.POST("/conversation", s.redactionHandler.SanitizeConversationHandler)
		}

		tokenization := v1.Group("/tokenization")
		{
			tokenization.POST("/user-data", s.tokenizationHandler.UserDataHandler)
			tokenization.POST("/payment", s.tokenizationHandler.PaymentHandler)
		}
	}

	return router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.SetupRouter(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
