package domain

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	analytics "github.com/felixgeelhaar/studyflow/internal/analytics/domain"
)

// RetentionDays bounds how far back the ledger keeps sessions, measured from
// the end of the newest recorded session.
const RetentionDays = 90

// Ledger is the append-only, rolling log of study sessions. Storage errors
// are logged and swallowed; the in-memory list stays authoritative for the
// process.
type Ledger struct {
	repo     Repository
	logger   *slog.Logger
	newID    func() string
	sessions []StudySession
}

// NewLedger loads the stored sessions. A load failure starts an empty ledger.
func NewLedger(ctx context.Context, repo Repository, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		repo:   repo,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}

	sessions, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load sessions, starting empty", "error", err)
		sessions = nil
	}
	l.sessions = sessions
	return l
}

// RecordSession prunes sessions that ended more than RetentionDays before the
// new session's end, appends the new session and saves the result.
func (l *Ledger) RecordSession(ctx context.Context, draft SessionDraft) StudySession {
	if draft.End.Before(draft.Start) {
		draft.End = draft.Start
	}
	if draft.Type == "" {
		draft.Type = SessionStudy
	}

	session := StudySession{
		ID:              l.newID(),
		SubjectID:       draft.SubjectID,
		StartTime:       draft.Start,
		EndTime:         draft.End,
		DurationMinutes: draft.DurationMinutes(),
		Type:            draft.Type,
	}

	cutoff := session.EndTime.AddDate(0, 0, -RetentionDays)
	next := make([]StudySession, 0, len(l.sessions)+1)
	for _, s := range l.sessions {
		if !s.EndTime.Before(cutoff) {
			next = append(next, s)
		}
	}
	next = append(next, session)
	l.sessions = next

	if err := l.repo.Save(ctx, next); err != nil {
		l.logger.Warn("failed to save sessions", "session_id", session.ID, "error", err)
	}
	return session
}

// Sessions returns a copy of the retained sessions, oldest first.
func (l *Ledger) Sessions() []StudySession {
	out := make([]StudySession, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// MinutesToday sums sessions that started on now's calendar day.
func (l *Ledger) MinutesToday(now time.Time) int {
	today := analytics.StartOfDay(now)
	return l.minutesBetween(today, today.AddDate(0, 0, 1))
}

// MinutesThisWeek sums sessions that started in the current Monday-start week.
func (l *Ledger) MinutesThisWeek(now time.Time) int {
	week := analytics.CurrentWeek(now)
	return l.minutesBetween(week.Start, week.End())
}

// minutesBetween sums sessions whose local start falls in [from, to).
func (l *Ledger) minutesBetween(from, to time.Time) int {
	total := 0
	for _, s := range l.sessions {
		start := s.StartTime.In(from.Location())
		if !start.Before(from) && start.Before(to) {
			total += s.DurationMinutes
		}
	}
	return total
}

// MinutesBySubject sums retained minutes per subject id.
func (l *Ledger) MinutesBySubject() map[string]int {
	out := make(map[string]int)
	for _, s := range l.sessions {
		out[s.SubjectID] += s.DurationMinutes
	}
	return out
}
