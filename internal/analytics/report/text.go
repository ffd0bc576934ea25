// Package report renders the dashboard view as downloadable documents.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
)

// RenderText renders a flat line-oriented summary of view.
func RenderText(view *queries.DashboardView) string {
	var b strings.Builder

	title := "StudyFlow report - " + view.Today
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("=", len(title)))
	fmt.Fprintln(&b)

	o := view.Overall
	fmt.Fprintf(&b, "Topics studied: %d/%d (%s)\n", o.StudiedTopics, o.TotalTopics, percent(o.Progress()))
	fmt.Fprintf(&b, "Questions: %d answered, %d correct (%s)\n", o.QuestionsTotal, o.QuestionsCorrect, percent(o.Accuracy))
	fmt.Fprintf(&b, "Current streak: %s (longest %s)\n", days(view.Streak.Current), days(view.Streak.Longest))
	fmt.Fprintf(&b, "Last %d days: %d questions, %s accuracy, %s vs previous period\n",
		domain.EvolutionDays, view.EvolutionTotal, percent(view.EvolutionAccuracy), signedPercent(view.Trend.Percent()))

	w := view.Weeks
	fmt.Fprintf(&b, "This week: %d questions, %s accuracy (%+d questions, %+d pts vs last week)\n",
		w.ThisWeek.QuestionsMade, percent(w.ThisWeek.Accuracy), w.QuestionsDelta, w.AccuracyDelta)
	fmt.Fprintf(&b, "Today: %d questions\n", view.QuestionsToday)
	fmt.Fprintf(&b, "Study time: %d min today, %d min this week\n", view.MinutesToday, view.MinutesThisWeek)
	fmt.Fprintf(&b, "Reviews due: %d\n", view.DueReviews)
	fmt.Fprintf(&b, "Completion forecast: %s\n", view.Forecast.Label())

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Goals")
	for _, p := range view.GoalProgress {
		mark := " "
		if p.Achieved() {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s: %d/%d\n", mark, p.Field, p.Current, p.Target)
	}

	if len(view.Subjects) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Subjects")
		for _, s := range view.Subjects {
			fmt.Fprintf(&b, "- %s: %d/%d topics, %d questions, %s accuracy\n",
				s.SubjectName, s.StudiedTopics, s.TotalTopics, s.QuestionsTotal, percent(s.Accuracy))
		}
	}

	if len(view.Deadlines) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Upcoming deadlines")
		for _, d := range view.Deadlines {
			fmt.Fprintf(&b, "- %s / %s: %s\n", d.SubjectName, d.TopicName, d.Status.Label)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Reviews this week")
	for _, d := range view.ReviewCalendar {
		names := make([]string, len(d.Topics))
		for i, t := range d.Topics {
			names[i] = t.TopicName
		}
		list := "-"
		if len(names) > 0 {
			list = strings.Join(names, ", ")
		}
		fmt.Fprintf(&b, "%s %s: %s\n", d.Weekday[:3], d.Date, list)
	}

	return b.String()
}

func percent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}

func signedPercent(points float64) string {
	return fmt.Sprintf("%+d%%", int(math.Round(points)))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
