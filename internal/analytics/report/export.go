package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/security"
)

// Format is an export file format.
type Format string

const (
	FormatText Format = "txt"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for formats other than txt and xlsx.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat parses a format name. Empty input means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case "", "text":
		return FormatText, nil
	case FormatText, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// FileName returns the dated report file name, e.g.
// studyflow-report-2024-03-10.txt.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("studyflow-report-%s.%s", now.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}

// Export writes view into dir and returns the written path. dir is created
// when missing.
func Export(dir string, view *queries.DashboardView, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	base, err := security.ValidateFilePath(dir)
	if err != nil {
		return "", err
	}
	path, err := security.ValidateFilePathInDir(filepath.Join(base, FileName(view.GeneratedAt, string(format))), base)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatText:
		if err := os.WriteFile(path, []byte(RenderText(view)), 0o644); err != nil {
			return "", fmt.Errorf("failed to write report: %w", err)
		}
	case FormatXLSX:
		f, err := RenderXLSX(view)
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return "", fmt.Errorf("failed to write report: %w", err)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return path, nil
}
