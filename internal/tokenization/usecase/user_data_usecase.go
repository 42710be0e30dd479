package usecase

import (
	apperrors "github.com/converso/piivault/internal/errors"
	tokenizationDomain "github.com/converso/piivault/internal/tokenization/domain"
)

// userDataTokenizer implements UserDataTokenizer as a plain tree walk over the
// decoded JSON value. Input is data, not an object graph, so no cycle
// detection is needed.
type userDataTokenizer struct {
	sensitiveKeys map[string]struct{}
}

// TokenizeUserData returns a copy of the record with every non-empty scalar
// under a sensitive key replaced by a placeholder.
func (u *userDataTokenizer) TokenizeUserData(record map[string]any) (*tokenizationDomain.TokenizedUserData, error) {
	tokenMap := make(map[string]any)

	tokenized, err := u.walkMap(record, tokenMap)
	if err != nil {
		return nil, err
	}

	return &tokenizationDomain.TokenizedUserData{
		TokenizedData: tokenized,
		TokenMap:      tokenMap,
	}, nil
}

func (u *userDataTokenizer) walkMap(record map[string]any, tokenMap map[string]any) (map[string]any, error) {
	result := make(map[string]any, len(record))

	for key, value := range record {
		_, sensitive := u.sensitiveKeys[key]
		if sensitive && isNonEmptyScalar(value) {
			placeholder, err := tokenizationDomain.NewUserTokenPlaceholder()
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to tokenize record")
			}
			result[key] = placeholder
			tokenMap[placeholder] = value
			continue
		}

		walked, err := u.walkValue(value, tokenMap)
		if err != nil {
			return nil, err
		}
		result[key] = walked
	}

	return result, nil
}

func (u *userDataTokenizer) walkValue(value any, tokenMap map[string]any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		return u.walkMap(typed, tokenMap)
	case []any:
		result := make([]any, len(typed))
		for i, element := range typed {
			walked, err := u.walkValue(element, tokenMap)
			if err != nil {
				return nil, err
			}
			result[i] = walked
		}
		return result, nil
	default:
		// Scalars not keyed by a sensitive field pass through untouched.
		return value, nil
	}
}

// isNonEmptyScalar reports whether the value is a leaf worth tokenizing:
// a non-empty string, or any number or bool. Nested objects and arrays under
// a sensitive key are recursed into, not replaced wholesale.
func isNonEmptyScalar(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	case map[string]any, []any:
		return false
	default:
		// Numbers and bools from decoded JSON.
		return true
	}
}

// NewUserDataTokenizer creates a UserDataTokenizer with the given sensitive
// key allow-list. An empty list falls back to the default table.
func NewUserDataTokenizer(sensitiveKeys []string) UserDataTokenizer {
	if len(sensitiveKeys) == 0 {
		sensitiveKeys = tokenizationDomain.DefaultSensitiveKeys
	}

	keys := make(map[string]struct{}, len(sensitiveKeys))
	for _, key := range sensitiveKeys {
		keys[key] = struct{}{}
	}
	return &userDataTokenizer{sensitiveKeys: keys}
}
