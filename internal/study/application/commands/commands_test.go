package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/internal/study/infrastructure/importer"
)

// memoryRepo is an in-memory domain.CatalogRepository.
type memoryRepo struct {
	catalog *domain.Catalog
	saves   int
	saveErr error
}

func (r *memoryRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	if r.catalog == nil {
		return &domain.Catalog{}, nil
	}
	c := *r.catalog
	return &c, nil
}

func (r *memoryRepo) Save(ctx context.Context, c *domain.Catalog) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.catalog = c
	return nil
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *mockCatalogRepo) Save(ctx context.Context, c *domain.Catalog) error {
	return m.Called(ctx, c).Error(0)
}

var fixedNow = func() time.Time { return time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC) }

func TestLogQuestionsHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates topic and appends log", func(t *testing.T) {
		repo := &memoryRepo{}
		h := NewLogQuestionsHandler(repo)
		h.now = fixedNow

		topic, err := h.Handle(ctx, LogQuestionsCommand{Subject: "Math", Topic: "Limits", Made: 10, Correct: 7})

		require.NoError(t, err)
		require.Len(t, topic.QuestionLogs, 1)
		assert.Equal(t, "2024-03-10", topic.QuestionLogs[0].Date)
		assert.Equal(t, 10, topic.QuestionsTotal)
		assert.True(t, topic.Studied)
		assert.Equal(t, "2024-03-10", topic.DateStudied)
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("accumulates on existing topic", func(t *testing.T) {
		repo := &memoryRepo{}
		h := NewLogQuestionsHandler(repo)
		_, err := h.Handle(ctx, LogQuestionsCommand{Subject: "Math", Topic: "Limits", Date: "2024-03-01", Made: 4, Correct: 4})
		require.NoError(t, err)

		topic, err := h.Handle(ctx, LogQuestionsCommand{Subject: "math", Topic: "limits", Date: "2024-03-02", Made: 6, Correct: 1})

		require.NoError(t, err)
		assert.Len(t, topic.QuestionLogs, 2)
		assert.Equal(t, 10, topic.QuestionsTotal)
		assert.Equal(t, 5, topic.QuestionsCorrect)
		assert.Equal(t, "2024-03-01", topic.DateStudied)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		h := NewLogQuestionsHandler(&memoryRepo{})

		_, err := h.Handle(ctx, LogQuestionsCommand{Subject: "Math", Topic: "x", Date: "03/10/2024", Made: 1})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = h.Handle(ctx, LogQuestionsCommand{Subject: "Math", Topic: "x", Date: "2024-03-10", Made: 1, Correct: 2})
		assert.ErrorIs(t, err, ErrInvalidCounts)

		_, err = h.Handle(ctx, LogQuestionsCommand{Subject: "", Topic: "x", Date: "2024-03-10", Made: 1})
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})

	t.Run("propagates load errors", func(t *testing.T) {
		repo := new(mockCatalogRepo)
		repo.On("Load", ctx).Return(nil, errors.New("store down"))

		_, err := NewLogQuestionsHandler(repo).Handle(ctx, LogQuestionsCommand{Subject: "a", Topic: "b", Date: "2024-03-10"})

		assert.EqualError(t, err, "store down")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestRecordReviewHandler_Handle(t *testing.T) {
	ctx := context.Background()
	seed := func() *memoryRepo {
		c := &domain.Catalog{}
		ref, _ := c.EnsureTopic("Biology", "Cells", "Mitosis")
		ref.Topic.QuestionsTotal = 10
		ref.Topic.QuestionsCorrect = 6
		return &memoryRepo{catalog: c}
	}

	t.Run("appends snapshot and next review", func(t *testing.T) {
		repo := seed()
		h := NewRecordReviewHandler(repo)
		h.now = fixedNow

		topic, err := h.Handle(ctx, RecordReviewCommand{
			Subject: "biology", Topic: "mitosis", QuestionsTotal: 15, QuestionsCorrect: 9, NextReview: "2024-03-14",
		})

		require.NoError(t, err)
		require.Len(t, topic.ReviewHistory, 1)
		assert.Equal(t, "2024-03-10", topic.ReviewHistory[0].Date)
		assert.Equal(t, 15, topic.QuestionsTotal)
		assert.Equal(t, "2024-03-14", topic.FSRSNextReview)
	})

	t.Run("lower snapshot keeps scalar totals", func(t *testing.T) {
		repo := seed()

		topic, err := NewRecordReviewHandler(repo).Handle(ctx, RecordReviewCommand{
			Subject: "biology", Topic: "mitosis", Date: "2024-03-01", QuestionsTotal: 8, QuestionsCorrect: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, 10, topic.QuestionsTotal)
		assert.Equal(t, 6, topic.QuestionsCorrect)
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, err := NewRecordReviewHandler(seed()).Handle(ctx, RecordReviewCommand{
			Subject: "biology", Topic: "meiosis", Date: "2024-03-01",
		})
		assert.ErrorIs(t, err, domain.ErrTopicNotFound)
	})
}

func TestUpdateTopicHandler_Handle(t *testing.T) {
	ctx := context.Background()
	c := &domain.Catalog{}
	_, err := c.EnsureTopic("History", "", "Renaissance")
	require.NoError(t, err)
	repo := &memoryRepo{catalog: c}
	h := NewUpdateTopicHandler(repo)

	studied := true
	deadline := "2024-05-01"
	topic, err := h.Handle(ctx, UpdateTopicCommand{
		Subject: "history", Topic: "renaissance", Studied: &studied, DateStudied: "2024-03-01", Deadline: &deadline,
	})
	require.NoError(t, err)
	assert.True(t, topic.Studied)
	assert.Equal(t, "2024-03-01", topic.DateStudied)
	assert.Equal(t, "2024-05-01", topic.Deadline)

	bad := "soon"
	_, err = h.Handle(ctx, UpdateTopicCommand{Subject: "history", Topic: "renaissance", Deadline: &bad})
	assert.ErrorIs(t, err, ErrInvalidDate)

	studied = false
	topic, err = h.Handle(ctx, UpdateTopicCommand{Subject: "history", Topic: "renaissance", Studied: &studied})
	require.NoError(t, err)
	assert.Empty(t, topic.DateStudied)
}

func TestAddEssayHandler_Handle(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	h := NewAddEssayHandler(repo)
	h.now = fixedNow

	essay, err := h.Handle(ctx, AddEssayCommand{Title: " Climate change ", Score: 880})

	require.NoError(t, err)
	assert.NotEmpty(t, essay.ID)
	assert.Equal(t, "Climate change", essay.Title)
	assert.Equal(t, "2024-03-10", essay.Date)
	assert.Len(t, repo.catalog.Essays, 1)

	_, err = h.Handle(ctx, AddEssayCommand{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = h.Handle(ctx, AddEssayCommand{Title: "x", Score: 1001})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestImportTopicsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	c := &domain.Catalog{}
	ref, err := c.EnsureTopic("Math", "Algebra", "Matrices")
	require.NoError(t, err)
	ref.Topic.QuestionLogs = []domain.QuestionLog{{Date: "2024-01-01", QuestionsMade: 3}}
	repo := &memoryRepo{catalog: c}

	read := func(path, sheet string) (*importer.Result, error) {
		assert.Equal(t, "topics.csv", path)
		return &importer.Result{
			Rows: []importer.Row{
				{Subject: "Math", Group: "Algebra", Topic: "Matrices", Studied: true, QuestionsTotal: 20, QuestionsCorrect: 25},
				{Subject: "Math", Group: "Calculus", Topic: "Limits", Deadline: "2024-06-01", NextReview: "2024-03-12T00:00:00Z"},
			},
			Errors: []string{"Row 4: subject and topic are required"},
		}, nil
	}

	result, err := NewImportTopicsHandler(repo, read).Handle(ctx, ImportTopicsCommand{Path: "topics.csv"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Len(t, result.Errors, 1)

	matrices, err := repo.catalog.FindTopic("math", "matrices")
	require.NoError(t, err)
	assert.Equal(t, 20, matrices.Topic.QuestionsTotal)
	assert.Equal(t, 20, matrices.Topic.QuestionsCorrect)
	assert.Len(t, matrices.Topic.QuestionLogs, 1)

	limits, err := repo.catalog.FindTopic("math", "limits")
	require.NoError(t, err)
	assert.Equal(t, "Calculus", limits.Group.Name)
	assert.Equal(t, "2024-03-12", limits.Topic.FSRSNextReview)
}

func TestImportTopicsHandler_ReadError(t *testing.T) {
	repo := new(mockCatalogRepo)
	read := func(string, string) (*importer.Result, error) { return nil, importer.ErrUnsupportedFormat }

	_, err := NewImportTopicsHandler(repo, read).Handle(context.Background(), ImportTopicsCommand{Path: "x.json"})

	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
	repo.AssertNotCalled(t, "Load", mock.Anything)
}
