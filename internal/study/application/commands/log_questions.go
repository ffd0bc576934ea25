package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// LogQuestionsCommand records questions answered for a topic on a date.
type LogQuestionsCommand struct {
	Subject string
	Group   string
	Topic   string
	// Date defaults to today when empty.
	Date    string
	Made    int
	Correct int
}

// LogQuestionsHandler handles log questions commands.
type LogQuestionsHandler struct {
	repo domain.CatalogRepository
	now  func() time.Time
}

// NewLogQuestionsHandler creates a new log questions handler.
func NewLogQuestionsHandler(repo domain.CatalogRepository) *LogQuestionsHandler {
	return &LogQuestionsHandler{repo: repo, now: time.Now}
}

// Handle appends a question log, creating the topic if needed, and keeps the
// topic's scalar totals in step with its logs.
func (h *LogQuestionsHandler) Handle(ctx context.Context, cmd LogQuestionsCommand) (*domain.Topic, error) {
	date := cmd.Date
	if date == "" {
		date = domain.FormatDate(h.now())
	}
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if !validCounts(cmd.Made, cmd.Correct) {
		return nil, ErrInvalidCounts
	}

	catalog, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := catalog.EnsureTopic(cmd.Subject, cmd.Group, cmd.Topic)
	if err != nil {
		return nil, err
	}

	t := ref.Topic
	t.QuestionLogs = append(t.QuestionLogs, domain.QuestionLog{
		Date:             date,
		QuestionsMade:    cmd.Made,
		QuestionsCorrect: cmd.Correct,
	})
	t.QuestionsTotal += cmd.Made
	t.QuestionsCorrect += cmd.Correct
	if !t.Studied {
		t.Studied = true
		t.DateStudied = date
	}

	if err := h.repo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	topic := *t
	return &topic, nil
}
