package domain

import (
	"sort"
	"time"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// Ledger is the canonical per-date activity mapping. It is immutable once
// built; readers never modify it.
type Ledger struct {
	days  map[string]ActivityDay
	dates []string
}

type ledgerBuilder struct {
	days map[string]*ActivityDay
}

func newLedgerBuilder() *ledgerBuilder {
	return &ledgerBuilder{days: make(map[string]*ActivityDay)}
}

func (b *ledgerBuilder) add(date string, made, correct int) {
	day, ok := b.days[date]
	if !ok {
		day = &ActivityDay{Date: date}
		b.days[date] = day
	}
	day.QuestionsMade += made
	day.QuestionsCorrect += correct
}

func (b *ledgerBuilder) build() *Ledger {
	l := &Ledger{
		days:  make(map[string]ActivityDay, len(b.days)),
		dates: make([]string, 0, len(b.days)),
	}
	for date, day := range b.days {
		if day.QuestionsCorrect > day.QuestionsMade {
			day.QuestionsCorrect = day.QuestionsMade
		}
		day.Total = day.QuestionsMade
		l.days[date] = *day
		l.dates = append(l.dates, date)
	}
	sort.Strings(l.dates)
	return l
}

// BuildLedger folds every topic's activity source into a ledger. now
// supplies the "today" used by fallback topics without a study date.
func BuildLedger(subjects []study.Subject, now time.Time) *Ledger {
	today := StartOfDay(now)
	b := newLedgerBuilder()
	study.EachTopic(subjects, func(ref study.TopicRef) {
		if src := SourceFor(*ref.Topic, today); src != nil {
			src.contribute(b)
		}
	})
	return b.build()
}

// LedgerFromDays builds a ledger from raw day records, merging duplicates and
// applying the same clamping as BuildLedger.
func LedgerFromDays(days ...ActivityDay) *Ledger {
	b := newLedgerBuilder()
	for _, d := range days {
		if study.ValidDate(d.Date) {
			b.add(d.Date, nonNegative(d.QuestionsMade), nonNegative(d.QuestionsCorrect))
		}
	}
	return b.build()
}

// Get returns the ledger entry for date.
func (l *Ledger) Get(date string) (ActivityDay, bool) {
	day, ok := l.days[date]
	return day, ok
}

// Day returns the entry for date, or a zero day carrying that date.
func (l *Ledger) Day(date string) ActivityDay {
	if day, ok := l.days[date]; ok {
		return day
	}
	return ActivityDay{Date: date}
}

// Dates returns every ledger date in ascending order.
func (l *Ledger) Dates() []string {
	out := make([]string, len(l.dates))
	copy(out, l.dates)
	return out
}

// Len returns the number of distinct dates.
func (l *Ledger) Len() int {
	return len(l.dates)
}

// EarliestDate returns the oldest ledger date.
func (l *Ledger) EarliestDate() (string, bool) {
	if len(l.dates) == 0 {
		return "", false
	}
	return l.dates[0], true
}

// ActiveDates returns ascending dates whose total is positive.
func (l *Ledger) ActiveDates() []string {
	out := make([]string, 0, len(l.dates))
	for _, d := range l.dates {
		if l.days[d].Total > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Days returns every entry in ascending date order.
func (l *Ledger) Days() []ActivityDay {
	out := make([]ActivityDay, 0, len(l.dates))
	for _, d := range l.dates {
		out = append(out, l.days[d])
	}
	return out
}
