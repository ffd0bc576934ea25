package mcp

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func parseDate(value string, fallback time.Time) (string, error) {
	if value == "" {
		return fallback.Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return value, nil
}

func parseOptionalDateTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(dateTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format, use YYYY-MM-DD HH:MM: %w", err)
	}
	return parsed, nil
}
