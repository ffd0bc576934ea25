// Package importer reads topic spreadsheets (.xlsx or .csv) into rows the
// catalog can merge.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/security"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Row is one topic line from a spreadsheet. Empty optional cells are zero.
type Row struct {
	Line             int
	Subject          string
	Group            string
	Topic            string
	Studied          bool
	DateStudied      string
	QuestionsTotal   int
	QuestionsCorrect int
	Deadline         string
	NextReview       string
}

// Result holds parsed rows and the per-line problems that were skipped.
type Result struct {
	Rows   []Row
	Errors []string
}

// columns maps header names (lowercase) to Row fields. A sheet needs at least
// the subject and topic columns; the rest are optional.
var columns = map[string]string{
	"subject":           "subject",
	"group":             "group",
	"topic group":       "group",
	"topic":             "topic",
	"studied":           "studied",
	"date studied":      "date_studied",
	"date_studied":      "date_studied",
	"questions":         "questions_total",
	"questions total":   "questions_total",
	"questions_total":   "questions_total",
	"correct":           "questions_correct",
	"questions correct": "questions_correct",
	"questions_correct": "questions_correct",
	"deadline":          "deadline",
	"next review":       "next_review",
	"next_review":       "next_review",
}

// ReadFile parses path by extension. sheet selects the workbook sheet for
// .xlsx files; empty means the first sheet.
func ReadFile(path, sheet string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcel(path, sheet)
	case ".csv":
		f, err := security.SafeOpen(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readExcel(path, sheet string) (*Result, error) {
	clean, err := security.ValidateFilePath(path)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return parseRows(rows)
}

// ReadCSV parses CSV data with a header line.
func ReadCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		if field, ok := columns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}
	if _, ok := index["subject"]; !ok {
		return nil, fmt.Errorf("missing subject column")
	}
	if _, ok := index["topic"]; !ok {
		return nil, fmt.Errorf("missing topic column")
	}

	result := &Result{}
	for i, raw := range rows[1:] {
		line := i + 2
		cell := func(field string) string {
			col, ok := index[field]
			if !ok || col >= len(raw) {
				return ""
			}
			return strings.TrimSpace(raw[col])
		}

		if isBlank(raw) {
			continue
		}
		row := Row{
			Line:        line,
			Subject:     cell("subject"),
			Group:       cell("group"),
			Topic:       cell("topic"),
			Studied:     parseBool(cell("studied")),
			DateStudied: cell("date_studied"),
			Deadline:    cell("deadline"),
			NextReview:  cell("next_review"),
		}
		if row.Subject == "" || row.Topic == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: subject and topic are required", line))
			continue
		}

		var err error
		if row.QuestionsTotal, err = parseCount(cell("questions_total")); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: questions: %v", line, err))
			continue
		}
		if row.QuestionsCorrect, err = parseCount(cell("questions_correct")); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: correct: %v", line, err))
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "x", "sim", "done":
		return true
	}
	return false
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %d", n)
	}
	return n, nil
}
