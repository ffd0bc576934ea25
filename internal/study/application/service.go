// Package application contains the application layer for the study catalog.
package application

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/study/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/study/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Service provides a facade over all catalog handlers.
type Service struct {
	logQuestionsHandler *commands.LogQuestionsHandler
	recordReviewHandler *commands.RecordReviewHandler
	updateTopicHandler  *commands.UpdateTopicHandler
	addEssayHandler     *commands.AddEssayHandler
	importTopicsHandler *commands.ImportTopicsHandler

	listTopicsHandler *queries.ListTopicsHandler

	metrics observability.Metrics
}

// NewService creates a new catalog service.
func NewService(repo domain.CatalogRepository, metrics observability.Metrics) *Service {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Service{
		metrics: metrics,

		logQuestionsHandler: commands.NewLogQuestionsHandler(repo),
		recordReviewHandler: commands.NewRecordReviewHandler(repo),
		updateTopicHandler:  commands.NewUpdateTopicHandler(repo),
		addEssayHandler:     commands.NewAddEssayHandler(repo),
		importTopicsHandler: commands.NewImportTopicsHandler(repo, nil),

		listTopicsHandler: queries.NewListTopicsHandler(repo),
	}
}

// LogQuestions records answered questions for a topic.
func (s *Service) LogQuestions(ctx context.Context, cmd commands.LogQuestionsCommand) (*domain.Topic, error) {
	topic, err := s.logQuestionsHandler.Handle(ctx, cmd)
	if err == nil {
		s.metrics.Counter(observability.MetricQuestionsLogged, int64(cmd.Made))
	}
	return topic, err
}

// RecordReview stores a review snapshot.
func (s *Service) RecordReview(ctx context.Context, cmd commands.RecordReviewCommand) (*domain.Topic, error) {
	topic, err := s.recordReviewHandler.Handle(ctx, cmd)
	if err == nil {
		s.metrics.Counter(observability.MetricReviewsRecorded, 1)
	}
	return topic, err
}

// UpdateTopic changes a topic's study flag or deadline.
func (s *Service) UpdateTopic(ctx context.Context, cmd commands.UpdateTopicCommand) (*domain.Topic, error) {
	return s.updateTopicHandler.Handle(ctx, cmd)
}

// AddEssay records an essay.
func (s *Service) AddEssay(ctx context.Context, cmd commands.AddEssayCommand) (*domain.Essay, error) {
	return s.addEssayHandler.Handle(ctx, cmd)
}

// ImportTopics merges a spreadsheet into the catalog.
func (s *Service) ImportTopics(ctx context.Context, cmd commands.ImportTopicsCommand) (*commands.ImportTopicsResult, error) {
	result, err := s.importTopicsHandler.Handle(ctx, cmd)
	if err == nil {
		s.metrics.Counter(observability.MetricTopicsImported, int64(result.Created+result.Updated))
	}
	return result, err
}

// ListTopics lists topics with their statuses.
func (s *Service) ListTopics(ctx context.Context, q queries.ListTopicsQuery) (*queries.ListTopicsResult, error) {
	return s.listTopicsHandler.Handle(ctx, q)
}
