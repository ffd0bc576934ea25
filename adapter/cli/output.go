package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
)

var errNoApp = errors.New("studyflow is not initialized; check STORE_URL and run 'studyflow doctor'")

// ErrNoApp is returned by commands run without an initialized App.
func ErrNoApp() error { return errNoApp }

// PrintJSON writes v as indented JSON to the command's output.
func PrintJSON(cmd *cobra.Command, v any) error {
	return printJSON(cmd, v)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ParseDay parses a YYYY-MM-DD flag value. Empty means today.
func ParseDay(value string, now time.Time) (string, error) {
	if value == "" || value == "today" {
		return now.Format(time.DateOnly), nil
	}
	if value == "yesterday" {
		return now.AddDate(0, 0, -1).Format(time.DateOnly), nil
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}
	return value, nil
}

var heatmapShades = []rune{'.', '░', '▒', '▓', '█'}

// renderHeatmap draws the heatmap as rows of seven days.
func renderHeatmap(days []domain.HeatmapDay) string {
	var b strings.Builder
	for i, d := range days {
		if i%7 == 0 {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s  ", d.Date)
		}
		level := min(max(d.Level, 0), len(heatmapShades)-1)
		b.WriteRune(heatmapShades[level])
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	return b.String()
}
