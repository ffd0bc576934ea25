package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/internal/study/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/study/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

type topicListInput struct {
	Subject string `json:"subject,omitempty"`
}

type logQuestionsInput struct {
	Subject string `json:"subject" jsonschema:"required"`
	Group   string `json:"group,omitempty"`
	Topic   string `json:"topic" jsonschema:"required"`
	Date    string `json:"date,omitempty"`
	Made    int    `json:"made" jsonschema:"required"`
	Correct int    `json:"correct"`
}

type recordReviewInput struct {
	Subject    string `json:"subject" jsonschema:"required"`
	Topic      string `json:"topic" jsonschema:"required"`
	Date       string `json:"date,omitempty"`
	Total      int    `json:"total"`
	Correct    int    `json:"correct"`
	NextReview string `json:"next_review,omitempty"`
}

type essayInput struct {
	Title string `json:"title" jsonschema:"required"`
	Date  string `json:"date,omitempty"`
	Score int    `json:"score,omitempty"`
}

func registerCatalogTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("catalog.list").
		Description("List topics with question totals, accuracy, deadline and review status").
		Handler(func(ctx context.Context, input topicListInput) (*queries.ListTopicsResult, error) {
			deps.called(ctx, "catalog.list")
			if app.Study == nil {
				return nil, errNotReady
			}
			return app.Study.ListTopics(ctx, queries.ListTopicsQuery{Subject: input.Subject})
		})

	srv.Tool("catalog.log_questions").
		Description("Log answered and correct questions for a topic on a date (default today)").
		Handler(func(ctx context.Context, input logQuestionsInput) (*domain.Topic, error) {
			deps.called(ctx, "catalog.log_questions")
			if app.Study == nil {
				return nil, errNotReady
			}
			if input.Subject == "" || input.Topic == "" {
				return nil, errors.New("subject and topic are required")
			}
			date, err := parseDate(input.Date, time.Now())
			if err != nil {
				return nil, err
			}
			return app.Study.LogQuestions(ctx, commands.LogQuestionsCommand{
				Subject: input.Subject,
				Group:   input.Group,
				Topic:   input.Topic,
				Date:    date,
				Made:    input.Made,
				Correct: input.Correct,
			})
		})

	srv.Tool("catalog.record_review").
		Description("Record a review snapshot of cumulative totals and the next review date").
		Handler(func(ctx context.Context, input recordReviewInput) (*domain.Topic, error) {
			deps.called(ctx, "catalog.record_review")
			if app.Study == nil {
				return nil, errNotReady
			}
			date, err := parseDate(input.Date, time.Now())
			if err != nil {
				return nil, err
			}
			return app.Study.RecordReview(ctx, commands.RecordReviewCommand{
				Subject:          input.Subject,
				Topic:            input.Topic,
				Date:             date,
				QuestionsTotal:   input.Total,
				QuestionsCorrect: input.Correct,
				NextReview:       input.NextReview,
			})
		})

	srv.Tool("catalog.add_essay").
		Description("Record a written essay").
		Handler(func(ctx context.Context, input essayInput) (*domain.Essay, error) {
			deps.called(ctx, "catalog.add_essay")
			if app.Study == nil {
				return nil, errNotReady
			}
			date, err := parseDate(input.Date, time.Now())
			if err != nil {
				return nil, err
			}
			return app.Study.AddEssay(ctx, commands.AddEssayCommand{
				Title: input.Title,
				Date:  date,
				Score: input.Score,
			})
		})

	return nil
}
