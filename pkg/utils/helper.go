package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat converts string to float64 with default value
func ParseFloat(value string, defaultValue float64) float64 {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return result
}

// ParseDate parses a YYYY-MM-DD value, falling back to today when
// empty or malformed.
func ParseDate(value string) time.Time {
	if value == "" {
		return time.Now().Truncate(24 * time.Hour)
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Now().Truncate(24 * time.Hour)
	}

	return parsed
}
