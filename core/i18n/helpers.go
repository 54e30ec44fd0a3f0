package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders substitutes %{name} markers with values from placeholders.
// Unknown markers are left untouched.
//
//	ReplacePlaceholders("HTTP %{status}: %{text}", M{"status": 502, "text": "Bad Gateway"})
//	// "HTTP 502: Bad Gateway"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 {
		return template
	}
	result := template
	for key, value := range placeholders {
		result = strings.ReplaceAll(result, "%{"+key+"}", fmt.Sprintf("%v", value))
	}
	return result
}
