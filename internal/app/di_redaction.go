package app

import (
	"fmt"

	detectionService "github.com/converso/piivault/internal/detection/service"
	redactionHTTP "github.com/converso/piivault/internal/redaction/http"
	redactionUsecase "github.com/converso/piivault/internal/redaction/usecase"
)

// Redactor returns the text redactor.
func (c *Container) Redactor() (redactionUsecase.Redactor, error) {
	c.redactorInit.Do(func() {
		c.redactor = redactionUsecase.NewRedactor(detectionService.NewDetector())
	})
	return c.redactor, nil
}

// ConversationSanitizer returns the conversation sanitizer.
func (c *Container) ConversationSanitizer() (redactionUsecase.ConversationSanitizer, error) {
	var err error
	c.conversationSanitizerInit.Do(func() {
		c.conversationSanitizer, err = c.initConversationSanitizer()
		if err != nil {
			c.initErrors["conversationSanitizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["conversationSanitizer"]; exists {
		return nil, storedErr
	}
	return c.conversationSanitizer, nil
}

// initConversationSanitizer creates the conversation sanitizer from the
// redactor and the structural tokenizer.
func (c *Container) initConversationSanitizer() (redactionUsecase.ConversationSanitizer, error) {
	redactor, err := c.Redactor()
	if err != nil {
		return nil, fmt.Errorf("failed to get redactor for conversation sanitizer: %w", err)
	}

	tokenizer, err := c.UserDataTokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get user data tokenizer for conversation sanitizer: %w", err)
	}

	return redactionUsecase.NewConversationSanitizer(redactor, tokenizer), nil
}

// redactionHandler creates the HTTP handler for redaction operations.
func (c *Container) redactionHandler() (*redactionHTTP.RedactionHandler, error) {
	redactor, err := c.Redactor()
	if err != nil {
		return nil, fmt.Errorf("failed to get redactor for redaction handler: %w", err)
	}

	sanitizer, err := c.ConversationSanitizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation sanitizer for redaction handler: %w", err)
	}

	return redactionHTTP.NewRedactionHandler(redactor, sanitizer, c.Logger()), nil
}
