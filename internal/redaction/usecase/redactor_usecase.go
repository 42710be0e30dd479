package usecase

import (
	"strings"

	detectionService "github.com/converso/piivault/internal/detection/service"
	apperrors "github.com/converso/piivault/internal/errors"
	redactionDomain "github.com/converso/piivault/internal/redaction/domain"
)

// redactor implements Redactor using the regex pattern detector. Matches
// arrive ordered by start index with overlaps already resolved, so
// substitution is a single left-to-right pass.
type redactor struct {
	detector detectionService.Detector
}

// RedactQuery replaces each match, in left-to-right order, with a fresh
// placeholder and records placeholder -> matched text. The same literal value
// appearing twice yields two distinct placeholders.
func (r *redactor) RedactQuery(text string) (*redactionDomain.RedactionResult, error) {
	matches := r.detector.Detect(text)
	if len(matches) == 0 {
		return &redactionDomain.RedactionResult{
			SanitizedText: text,
			Tokens:        map[string]string{},
		}, nil
	}

	var builder strings.Builder
	tokens := make(map[string]string, len(matches))
	cursor := 0

	for i, match := range matches {
		placeholder, err := redactionDomain.NewPlaceholder(i + 1)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to redact text")
		}

		builder.WriteString(text[cursor:match.StartIndex])
		builder.WriteString(placeholder)
		tokens[placeholder] = match.MatchedText
		cursor = match.EndIndex
	}
	builder.WriteString(text[cursor:])

	return &redactionDomain.RedactionResult{
		SanitizedText: builder.String(),
		Tokens:        tokens,
	}, nil
}

// SanitizeResponse replaces every match with the fixed redaction marker.
func (r *redactor) SanitizeResponse(text string) string {
	matches := r.detector.Detect(text)
	if len(matches) == 0 {
		return text
	}

	var builder strings.Builder
	cursor := 0

	for _, match := range matches {
		builder.WriteString(text[cursor:match.StartIndex])
		builder.WriteString(redactionDomain.RedactedMarker)
		cursor = match.EndIndex
	}
	builder.WriteString(text[cursor:])

	return builder.String()
}

// NewRedactor creates a new Redactor backed by the given detector.
func NewRedactor(detector detectionService.Detector) Redactor {
	return &redactor{detector: detector}
}
