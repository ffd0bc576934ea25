// Package queries contains read handlers for the study catalog.
package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// TopicView is one topic row with its derived statuses.
type TopicView struct {
	SubjectID        string                `json:"subjectId"`
	SubjectName      string                `json:"subjectName"`
	GroupName        string                `json:"groupName"`
	TopicID          string                `json:"topicId"`
	TopicName        string                `json:"topicName"`
	Studied          bool                  `json:"studied"`
	QuestionsTotal   int                   `json:"questionsTotal"`
	QuestionsCorrect int                   `json:"questionsCorrect"`
	Accuracy         float64               `json:"accuracy"`
	Deadline         domain.DeadlineStatus `json:"deadline"`
	Review           domain.ReviewStatus   `json:"review"`
	NextReview       string                `json:"nextReview,omitempty"`
}

// ListTopicsQuery lists topics, optionally for one subject.
type ListTopicsQuery struct {
	Subject string
	Now     time.Time
}

// ListTopicsResult holds topic rows and per-subject totals.
type ListTopicsResult struct {
	Topics   []TopicView           `json:"topics"`
	Subjects []domain.SubjectStats `json:"subjects"`
	Overall  domain.OverallStats   `json:"overall"`
}

// ListTopicsHandler handles list topics queries.
type ListTopicsHandler struct {
	repo domain.CatalogRepository
}

// NewListTopicsHandler creates a new list topics handler.
func NewListTopicsHandler(repo domain.CatalogRepository) *ListTopicsHandler {
	return &ListTopicsHandler{repo: repo}
}

// Handle executes the query.
func (h *ListTopicsHandler) Handle(ctx context.Context, q ListTopicsQuery) (*ListTopicsResult, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	catalog, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	subjects := catalog.Subjects
	if q.Subject != "" {
		ref, err := catalog.FindSubject(q.Subject)
		if err != nil {
			return nil, err
		}
		subjects = []domain.Subject{*ref}
	}

	result := &ListTopicsResult{
		Topics:   []TopicView{},
		Subjects: domain.ComputeSubjectStats(subjects),
		Overall:  domain.ComputeStats(subjects),
	}
	domain.EachTopic(subjects, func(ref domain.TopicRef) {
		t := ref.Topic
		accuracy := 0.0
		if t.QuestionsTotal > 0 {
			accuracy = float64(t.QuestionsCorrect) / float64(t.QuestionsTotal)
		}
		result.Topics = append(result.Topics, TopicView{
			SubjectID:        ref.Subject.ID,
			SubjectName:      ref.Subject.Name,
			GroupName:        ref.Group.Name,
			TopicID:          t.ID,
			TopicName:        t.Name,
			Studied:          t.Studied,
			QuestionsTotal:   t.QuestionsTotal,
			QuestionsCorrect: t.QuestionsCorrect,
			Accuracy:         accuracy,
			Deadline:         domain.ClassifyDeadline(t.Deadline, now),
			Review:           domain.ClassifyReview(t.FSRSNextReview, now),
			NextReview:       t.FSRSNextReview,
		})
	})
	return result, nil
}
