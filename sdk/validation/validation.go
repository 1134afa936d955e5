// Package validation holds small conversion helpers shared by the bridges.
package validation

import (
	"fmt"
	"strconv"
)

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseID parses a positive integer record identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", s)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return id, nil
}
