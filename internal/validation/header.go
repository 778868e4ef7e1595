// Package validation checks client-supplied header values before they reach logs or responses
package validation

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxRequestIDLength bounds an inbound X-Request-ID value
const MaxRequestIDLength = 128

// Header validation errors
var (
	ErrEmptyHeaderValue       = errors.New("header value is empty")
	ErrHeaderValueTooLong     = errors.New("header value too long")
	ErrInvalidUnicodeCategory = errors.New("header value contains a blocked unicode category")
	ErrNotNormalized          = errors.New("header value is not NFKC normalized")
)

// Blocked Unicode categories for header values
var blockedCategories = []*unicode.RangeTable{
	unicode.Cc, // Control characters, including CR and LF
	unicode.Cf, // Format characters (zero-width, bidi overrides)
	unicode.Cs, // Surrogates
	unicode.Co, // Private use
}

// ValidateHeaderValue rejects values that could forge log lines or smuggle
// invisible characters into echoed headers
func ValidateHeaderValue(value string, maxLen int) error {
	if value == "" {
		return ErrEmptyHeaderValue
	}
	if len(value) > maxLen {
		return ErrHeaderValueTooLong
	}

	for _, r := range value {
		if unicode.IsOneOf(blockedCategories, r) {
			return ErrInvalidUnicodeCategory
		}
	}

	// compatibility forms (fullwidth letters, ligatures) look like ASCII ids but are not
	if !norm.NFKC.IsNormalString(value) {
		return ErrNotNormalized
	}

	return nil
}

// ValidateRequestID validates an inbound correlation id
func ValidateRequestID(value string) error {
	if err := ValidateHeaderValue(value, MaxRequestIDLength); err != nil {
		return fmt.Errorf("invalid request id: %w", err)
	}
	return nil
}
