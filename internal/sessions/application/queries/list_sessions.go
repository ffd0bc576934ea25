package queries

import (
	"context"
	"log/slog"
	"sort"

	"github.com/felixgeelhaar/studyflow/internal/sessions/domain"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// ListSessionsQuery filters the retained sessions.
type ListSessionsQuery struct {
	// Subject limits results to one subject when set.
	Subject string
	// Limit caps the number of sessions returned; zero means all.
	Limit int
}

// ListSessionsResult holds sessions newest first.
type ListSessionsResult struct {
	Sessions         []domain.StudySession `json:"sessions"`
	MinutesBySubject map[string]int        `json:"minutesBySubject"`
	TotalMinutes     int                   `json:"totalMinutes"`
}

// ListSessionsHandler handles list sessions queries.
type ListSessionsHandler struct {
	repo   domain.Repository
	logger *slog.Logger
}

// NewListSessionsHandler creates a new list sessions handler.
func NewListSessionsHandler(repo domain.Repository, logger *slog.Logger) *ListSessionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListSessionsHandler{repo: repo, logger: logger}
}

// Handle lists sessions. Totals cover every retained session regardless of
// the filter.
func (h *ListSessionsHandler) Handle(ctx context.Context, q ListSessionsQuery) (*ListSessionsResult, error) {
	ledger := domain.NewLedger(ctx, h.repo, h.logger)
	all := ledger.Sessions()

	subject := ""
	if q.Subject != "" {
		subject = study.Slug(q.Subject)
	}

	sessions := make([]domain.StudySession, 0, len(all))
	total := 0
	for _, s := range all {
		total += s.DurationMinutes
		if subject != "" && s.SubjectID != subject {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	if q.Limit > 0 && len(sessions) > q.Limit {
		sessions = sessions[:q.Limit]
	}

	return &ListSessionsResult{
		Sessions:         sessions,
		MinutesBySubject: ledger.MinutesBySubject(),
		TotalMinutes:     total,
	}, nil
}
