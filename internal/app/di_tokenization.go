package app

import (
	"fmt"

	tokenizationHTTP "github.com/converso/piivault/internal/tokenization/http"
	tokenizationUsecase "github.com/converso/piivault/internal/tokenization/usecase"
)

// UserDataTokenizer returns the structural tokenizer for user records.
func (c *Container) UserDataTokenizer() (tokenizationUsecase.UserDataTokenizer, error) {
	c.userDataTokenizerInit.Do(func() {
		c.userDataTokenizer = tokenizationUsecase.NewUserDataTokenizer(c.config.SensitiveFieldList())
	})
	return c.userDataTokenizer, nil
}

// PaymentTokenizer returns the payment tokenizer.
func (c *Container) PaymentTokenizer() (tokenizationUsecase.PaymentTokenizer, error) {
	var err error
	c.paymentTokenizerInit.Do(func() {
		c.paymentTokenizer, err = c.initPaymentTokenizer()
		if err != nil {
			c.initErrors["paymentTokenizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["paymentTokenizer"]; exists {
		return nil, storedErr
	}
	return c.paymentTokenizer, nil
}

// initPaymentTokenizer creates the payment tokenizer on top of the secure
// token use case.
func (c *Container) initPaymentTokenizer() (tokenizationUsecase.PaymentTokenizer, error) {
	useCase, err := c.SecureTokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secure token use case for payment tokenizer: %w", err)
	}

	return tokenizationUsecase.NewPaymentTokenizer(useCase, c.DefaultTokenTTL()), nil
}

// tokenizationHandler creates the HTTP handler for tokenization operations.
func (c *Container) tokenizationHandler() (*tokenizationHTTP.TokenizationHandler, error) {
	userDataTokenizer, err := c.UserDataTokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get user data tokenizer for tokenization handler: %w", err)
	}

	paymentTokenizer, err := c.PaymentTokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment tokenizer for tokenization handler: %w", err)
	}

	return tokenizationHTTP.NewTokenizationHandler(userDataTokenizer, paymentTokenizer, c.Logger()), nil
}
