package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// RecordReviewCommand stores a cumulative review snapshot and the next review
// date produced by the external scheduler.
type RecordReviewCommand struct {
	Subject          string
	Topic            string
	Date             string
	QuestionsTotal   int
	QuestionsCorrect int
	NextReview       string
}

// RecordReviewHandler handles record review commands.
type RecordReviewHandler struct {
	repo domain.CatalogRepository
	now  func() time.Time
}

// NewRecordReviewHandler creates a new record review handler.
func NewRecordReviewHandler(repo domain.CatalogRepository) *RecordReviewHandler {
	return &RecordReviewHandler{repo: repo, now: time.Now}
}

// Handle appends the snapshot to an existing topic. Scalar totals only move
// forward so a corrected snapshot never shrinks them.
func (h *RecordReviewHandler) Handle(ctx context.Context, cmd RecordReviewCommand) (*domain.Topic, error) {
	date := cmd.Date
	if date == "" {
		date = domain.FormatDate(h.now())
	}
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if cmd.NextReview != "" && !domain.ValidDate(cmd.NextReview) {
		return nil, ErrInvalidDate
	}
	if !validCounts(cmd.QuestionsTotal, cmd.QuestionsCorrect) {
		return nil, ErrInvalidCounts
	}

	catalog, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := catalog.FindTopic(cmd.Subject, cmd.Topic)
	if err != nil {
		return nil, err
	}

	t := ref.Topic
	t.ReviewHistory = append(t.ReviewHistory, domain.ReviewSnapshot{
		Date:             date,
		QuestionsTotal:   cmd.QuestionsTotal,
		QuestionsCorrect: cmd.QuestionsCorrect,
	})
	t.QuestionsTotal = max(t.QuestionsTotal, cmd.QuestionsTotal)
	t.QuestionsCorrect = max(t.QuestionsCorrect, cmd.QuestionsCorrect)
	if cmd.NextReview != "" {
		t.FSRSNextReview = cmd.NextReview
	}
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
