package middleware

import (
	"errors"
	"strings"
)

// Input validation and sanitization utilities

// ErrEmptyText reports a blank analysis payload.
var ErrEmptyText = errors.New("text content is required")

// ValidateText checks that request text is non-blank after trimming.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
