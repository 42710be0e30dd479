package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
	cryptoService "github.com/converso/piivault/internal/crypto/service"
)

// Keeper returns the managed key service keeper used to wrap data keys.
func (c *Container) Keeper() (cryptoService.Keeper, error) {
	var err error
	c.keeperInit.Do(func() {
		c.keeper, err = c.initKeeper()
		if err != nil {
			c.initErrors["keeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keeper"]; exists {
		return nil, storedErr
	}
	return c.keeper, nil
}

// KeyGateway returns the envelope encryption gateway.
func (c *Container) KeyGateway() (cryptoService.KeyGateway, error) {
	var err error
	c.keyGatewayInit.Do(func() {
		c.keyGateway, err = c.initKeyGateway()
		if err != nil {
			c.initErrors["keyGateway"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyGateway"]; exists {
		return nil, storedErr
	}
	return c.keyGateway, nil
}

// initKeeper opens a keeper against the configured managed key service.
func (c *Container) initKeeper() (cryptoService.Keeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, fmt.Errorf("KMS_KEY_URI is required")
	}

	kmsService := cryptoService.NewKMSService()
	keeper, err := kmsService.OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open keeper: %w", err)
	}
	return keeper, nil
}

// initKeyGateway creates the key gateway with the configured algorithm.
func (c *Container) initKeyGateway() (cryptoService.KeyGateway, error) {
	keeper, err := c.Keeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get keeper for key gateway: %w", err)
	}

	gateway, err := cryptoService.NewKeyGateway(
		keeper,
		cryptoService.NewAEADManager(),
		cryptoDomain.Algorithm(c.config.EncryptionAlgorithm),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create key gateway: %w", err)
	}
	return gateway, nil
}
