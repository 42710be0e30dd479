package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	detectionDomain "github.com/converso/piivault/internal/detection/domain"
)

func TestDetect(t *testing.T) {
	detector := NewDetector()

	t.Run("Email", func(t *testing.T) {
		matches := detector.Detect("contact me at jane.doe+test@example.co.uk please")

		require.Len(t, matches, 1)
		assert.Equal(t, detectionDomain.PatternEmail, matches[0].Type)
		assert.Equal(t, "jane.doe+test@example.co.uk", matches[0].MatchedText)
	})

	t.Run("PhoneFormats", func(t *testing.T) {
		matches := detector.Detect("call 555-123-4567 or (555) 987-6543")

		require.Len(t, matches, 2)
		assert.Equal(t, detectionDomain.PatternPhone, matches[0].Type)
		assert.Equal(t, "555-123-4567", matches[0].MatchedText)
		assert.Equal(t, "(555) 987-6543", matches[1].MatchedText)
	})

	t.Run("SSN", func(t *testing.T) {
		matches := detector.Detect("my ssn is 123-45-6789")

		require.Len(t, matches, 1)
		assert.Equal(t, detectionDomain.PatternSSN, matches[0].Type)
		assert.Equal(t, "123-45-6789", matches[0].MatchedText)
	})

	t.Run("CreditCardWithSeparators", func(t *testing.T) {
		for _, card := range []string{
			"4111111111111111",
			"4111 1111 1111 1111",
			"4111-1111-1111-1111",
			"3782 822463 10005",
		} {
			matches := detector.Detect("card: " + card)
			require.Len(t, matches, 1, "card %q", card)
			assert.Equal(t, detectionDomain.PatternCreditCard, matches[0].Type)
			assert.Equal(t, card, matches[0].MatchedText)
		}
	})

	t.Run("PaymentProcessorTokens", func(t *testing.T) {
		matches := detector.Detect("charge tok_1NirD82eZvKYlo2CVNiyz0s5 on card_9a8b7c6d")

		require.Len(t, matches, 2)
		assert.Equal(t, detectionDomain.PatternPaymentToken, matches[0].Type)
		assert.Equal(t, "tok_1NirD82eZvKYlo2CVNiyz0s5", matches[0].MatchedText)
		assert.Equal(t, "card_9a8b7c6d", matches[1].MatchedText)
	})

	t.Run("StreetAddress", func(t *testing.T) {
		matches := detector.Detect("ship to 742 Evergreen Terrace Ave and bill 1 Main St.")

		require.Len(t, matches, 2)
		assert.Equal(t, detectionDomain.PatternStreetAddress, matches[0].Type)
	})

	t.Run("EmptyText", func(t *testing.T) {
		assert.Empty(t, detector.Detect(""))
	})

	t.Run("CleanText", func(t *testing.T) {
		assert.Empty(t, detector.Detect("I would like to order two lattes tomorrow"))
	})

	t.Run("MalformedNearMissesDoNotMatch", func(t *testing.T) {
		// SSN missing a digit, phone missing a group, bare short digits.
		assert.Empty(t, detector.Detect("123-45-678 and 555-1234 and 42"))
	})

	t.Run("OverlapKeepsEarliestLongest", func(t *testing.T) {
		// The SSN-shaped prefix overlaps a longer card-shaped digit run; the
		// longer match starting at the same index wins.
		matches := detector.Detect("number 123-45-6789-0123")

		require.Len(t, matches, 1)
		assert.Equal(t, detectionDomain.PatternCreditCard, matches[0].Type)
		assert.Equal(t, "123-45-6789-0123", matches[0].MatchedText)
	})

	t.Run("OrderedByStartIndex", func(t *testing.T) {
		matches := detector.Detect("a@b.com then 555-123-4567 then 123-45-6789")

		require.Len(t, matches, 3)
		for i := 1; i < len(matches); i++ {
			assert.Greater(t, matches[i].StartIndex, matches[i-1].EndIndex-1)
		}
	})

	t.Run("OffsetsSliceBackToMatchedText", func(t *testing.T) {
		text := "reach me at a@b.com today"
		matches := detector.Detect(text)

		require.Len(t, matches, 1)
		assert.Equal(t, matches[0].MatchedText, text[matches[0].StartIndex:matches[0].EndIndex])
	})
}

func TestDetect_LargeInput(t *testing.T) {
	detector := NewDetector()

	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "line %d with some ordinary text and email%d@example.com in it\n", i, i)
	}
	text := sb.String()
	require.Greater(t, len(text), 50_000)

	start := time.Now()
	matches := detector.Detect(text)
	elapsed := time.Since(start)

	assert.Len(t, matches, 1000)
	assert.Less(t, elapsed, time.Second)
}
