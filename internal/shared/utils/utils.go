package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IsValidUUID reports whether s parses as a UUID.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseOrdering splits an ordering query param ("title", "-created_at")
// into field name and direction. Empty input falls back to defaultField
// ascending.
func ParseOrdering(param, defaultField string) (field string, desc bool) {
	if param == "" {
		return defaultField, false
	}
	if strings.HasPrefix(param, "-") {
		return strings.TrimPrefix(param, "-"), true
	}
	return param, false
}
