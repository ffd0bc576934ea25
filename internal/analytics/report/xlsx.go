package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
)

// Workbook sheet names.
const (
	SheetSummary   = "Summary"
	SheetEvolution = "Evolution"
	SheetHeatmap   = "Heatmap"
	SheetReviews   = "Reviews"
)

// RenderXLSX builds a workbook with one sheet per dashboard section. The
// caller owns the returned file and must close it.
func RenderXLSX(view *queries.DashboardView) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetSummary)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	w := &sheetWriter{f: f, header: bold}
	w.table(SheetSummary, []any{"Metric", "Value"}, summaryRows(view))

	evolution := make([][]any, 0, len(view.Evolution))
	for _, d := range view.Evolution {
		evolution = append(evolution, []any{d.Date, d.QuestionsMade, d.QuestionsCorrect})
	}
	w.table(SheetEvolution, []any{"Date", "Questions", "Correct"}, evolution)

	heatmap := make([][]any, 0, len(view.Heatmap))
	for _, d := range view.Heatmap {
		heatmap = append(heatmap, []any{d.Date, d.Count, d.Level})
	}
	w.table(SheetHeatmap, []any{"Date", "Questions", "Level"}, heatmap)

	var reviews [][]any
	for _, d := range view.ReviewCalendar {
		for _, t := range d.Topics {
			reviews = append(reviews, []any{d.Date, d.Weekday, t.SubjectName, t.TopicName})
		}
	}
	w.table(SheetReviews, []any{"Date", "Weekday", "Subject", "Topic"}, reviews)

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func summaryRows(view *queries.DashboardView) [][]any {
	o := view.Overall
	rows := [][]any{
		{"Date", view.Today},
		{"Topics studied", o.StudiedTopics},
		{"Topics total", o.TotalTopics},
		{"Questions answered", o.QuestionsTotal},
		{"Questions correct", o.QuestionsCorrect},
		{"Accuracy", percent(o.Accuracy)},
		{"Current streak", view.Streak.Current},
		{"Longest streak", view.Streak.Longest},
		{"Questions last 14 days", view.EvolutionTotal},
		{"Trend", signedPercent(view.Trend.Percent())},
		{"Questions this week", view.Weeks.ThisWeek.QuestionsMade},
		{"Questions last week", view.Weeks.LastWeek.QuestionsMade},
		{"Minutes today", view.MinutesToday},
		{"Minutes this week", view.MinutesThisWeek},
		{"Reviews due", view.DueReviews},
		{"Completion forecast", view.Forecast.Label()},
	}
	for _, p := range view.GoalProgress {
		rows = append(rows, []any{string(p.Field), fmt.Sprintf("%d/%d", p.Current, p.Target)})
	}
	return rows
}

// sheetWriter keeps the first error so table calls can be chained.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) hasSheet(name string) bool {
	for _, s := range w.f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

func (w *sheetWriter) table(sheet string, header []any, rows [][]any) {
	if w.err != nil {
		return
	}
	if !w.hasSheet(sheet) {
		if _, err := w.f.NewSheet(sheet); err != nil {
			w.err = fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			return
		}
	}
	if err := w.f.SetSheetRow(sheet, "A1", &header); err != nil {
		w.err = err
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		w.err = err
		return
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
			return
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := w.f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		w.err = err
	}
}
