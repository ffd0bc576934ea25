// Package commands contains command handlers for the study catalog.
package commands

import "errors"

var (
	// ErrInvalidDate indicates a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	// ErrInvalidCounts indicates negative counts or more correct than made.
	ErrInvalidCounts = errors.New("counts must be non-negative and correct must not exceed total")
)

func validCounts(total, correct int) bool {
	return total >= 0 && correct >= 0 && correct <= total
}
