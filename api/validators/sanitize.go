package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the value at maxLen
// bytes. Used for free-text query parameters before they reach SQL or redis.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
