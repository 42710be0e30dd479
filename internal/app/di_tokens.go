package app

import (
	"fmt"
	"time"

	tokensHTTP "github.com/converso/piivault/internal/tokens/http"
	tokensRepository "github.com/converso/piivault/internal/tokens/repository"
	tokensUsecase "github.com/converso/piivault/internal/tokens/usecase"
)

// TokenRepository returns the token repository for the configured store driver.
func (c *Container) TokenRepository() (tokensUsecase.TokenRepository, error) {
	var err error
	c.tokenRepoInit.Do(func() {
		c.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// SecureTokenUseCase returns the secure token use case, instrumented with
// business metrics.
func (c *Container) SecureTokenUseCase() (tokensUsecase.SecureTokenUseCase, error) {
	var err error
	c.secureTokenUseCaseInit.Do(func() {
		c.secureTokenUseCase, err = c.initSecureTokenUseCase()
		if err != nil {
			c.initErrors["secureTokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secureTokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.secureTokenUseCase, nil
}

// DefaultTokenTTL returns the expiration applied to tokens minted without an
// explicit TTL. Zero means no expiration.
func (c *Container) DefaultTokenTTL() time.Duration {
	return time.Duration(c.config.DefaultTokenTTLHours) * time.Hour
}

// initTokenRepository selects the repository implementation for the configured
// token store driver.
func (c *Container) initTokenRepository() (tokensUsecase.TokenRepository, error) {
	switch c.config.TokenStoreDriver {
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for token repository: %w", err)
		}
		return tokensRepository.NewPostgreSQLTokenRepository(db), nil
	case "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for token repository: %w", err)
		}
		return tokensRepository.NewMySQLTokenRepository(db), nil
	case "bbolt":
		db, err := c.BoltDB()
		if err != nil {
			return nil, fmt.Errorf("failed to get bbolt database for token repository: %w", err)
		}
		return tokensRepository.NewBboltTokenRepository(db)
	default:
		return nil, fmt.Errorf("unsupported token store driver: %s", c.config.TokenStoreDriver)
	}
}

// initSecureTokenUseCase creates the secure token use case with all its
// dependencies.
func (c *Container) initSecureTokenUseCase() (tokensUsecase.SecureTokenUseCase, error) {
	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for secure token use case: %w", err)
	}

	keyGateway, err := c.KeyGateway()
	if err != nil {
		return nil, fmt.Errorf("failed to get key gateway for secure token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secure token use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secure token use case: %w", err)
	}

	useCase := tokensUsecase.NewSecureTokenUseCase(tokenRepo, keyGateway, txManager)
	return tokensUsecase.NewSecureTokenUseCaseWithMetrics(useCase, businessMetrics), nil
}

// tokenHandler creates the HTTP handler for token operations.
func (c *Container) tokenHandler() (*tokensHTTP.TokenHandler, error) {
	useCase, err := c.SecureTokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure token use case for token handler: %w", err)
	}

	return tokensHTTP.NewTokenHandler(useCase, c.DefaultTokenTTL(), c.Logger()), nil
}
