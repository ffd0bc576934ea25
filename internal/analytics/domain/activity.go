// Package domain contains the read-side analytics engine: it normalizes topic
// activity into a per-day ledger and derives windows and metrics from it.
package domain

import (
	"sort"
	"time"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// ActivityDay is one calendar date's aggregate activity.
type ActivityDay struct {
	Date             string `json:"date"`
	QuestionsMade    int    `json:"questionsMade"`
	QuestionsCorrect int    `json:"questionsCorrect"`
	Total            int    `json:"total"`
}

// SourceKind identifies which activity strategy applies to a topic.
type SourceKind string

const (
	SourceLogs     SourceKind = "logs"
	SourceHistory  SourceKind = "history"
	SourceFallback SourceKind = "fallback"
)

// ActivitySource is the single activity strategy selected for a topic.
// The variants are LogSource, HistorySource and FallbackSource.
type ActivitySource interface {
	Kind() SourceKind
	contribute(b *ledgerBuilder)
}

// LogSource contributes explicit dated question logs.
type LogSource struct {
	Logs []study.QuestionLog
}

// HistorySource reconstructs daily deltas from cumulative review snapshots.
type HistorySource struct {
	History []study.ReviewSnapshot
}

// FallbackSource attributes a topic's whole scalar total to one day.
type FallbackSource struct {
	Date             string
	QuestionsMade    int
	QuestionsCorrect int
}

func (LogSource) Kind() SourceKind      { return SourceLogs }
func (HistorySource) Kind() SourceKind  { return SourceHistory }
func (FallbackSource) Kind() SourceKind { return SourceFallback }

// SourceFor selects the activity strategy for a topic in priority order:
// explicit logs, then review history, then the scalar total. It returns nil
// when the topic carries no activity. today is used when a fallback topic has
// no usable study date.
func SourceFor(t study.Topic, today time.Time) ActivitySource {
	switch {
	case len(t.QuestionLogs) > 0:
		return LogSource{Logs: t.QuestionLogs}
	case len(t.ReviewHistory) > 0:
		return HistorySource{History: t.ReviewHistory}
	case t.QuestionsTotal > 0:
		date, ok := study.DatePrefix(t.DateStudied)
		if !ok {
			date = study.FormatDate(today)
		}
		return FallbackSource{
			Date:             date,
			QuestionsMade:    t.QuestionsTotal,
			QuestionsCorrect: t.QuestionsCorrect,
		}
	default:
		return nil
	}
}

func (s LogSource) contribute(b *ledgerBuilder) {
	for _, log := range s.Logs {
		date, ok := study.DatePrefix(log.Date)
		if !ok {
			continue
		}
		b.add(date, nonNegative(log.QuestionsMade), nonNegative(log.QuestionsCorrect))
	}
}

// datedSnapshot is a history entry keyed by its calendar day. stamp keeps the
// raw value so snapshots taken on the same day stay in chronological order.
type datedSnapshot struct {
	date  string
	stamp string
	study.ReviewSnapshot
}

func (s HistorySource) contribute(b *ledgerBuilder) {
	entries := make([]datedSnapshot, 0, len(s.History))
	for _, e := range s.History {
		date, ok := study.DatePrefix(e.Date)
		if !ok {
			continue
		}
		entries = append(entries, datedSnapshot{date: date, stamp: e.Date, ReviewSnapshot: e})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].date != entries[j].date {
			return entries[i].date < entries[j].date
		}
		return entries[i].stamp < entries[j].stamp
	})

	// Each snapshot is cumulative; running maxima keep corrected or
	// out-of-order entries from producing negative deltas.
	var maxTotal, maxCorrect int
	for _, e := range entries {
		made := nonNegative(e.QuestionsTotal - maxTotal)
		correct := nonNegative(e.QuestionsCorrect - maxCorrect)
		maxTotal = max(maxTotal, e.QuestionsTotal)
		maxCorrect = max(maxCorrect, e.QuestionsCorrect)
		b.add(e.date, made, correct)
	}
}

func (s FallbackSource) contribute(b *ledgerBuilder) {
	if !study.ValidDate(s.Date) {
		return
	}
	b.add(s.Date, nonNegative(s.QuestionsMade), nonNegative(s.QuestionsCorrect))
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
