package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_EnsureTopic(t *testing.T) {
	t.Run("creates subject, group and topic", func(t *testing.T) {
		c := &Catalog{}

		ref, err := c.EnsureTopic("Mathematics", "Algebra", "Linear Equations")

		require.NoError(t, err)
		assert.Equal(t, "mathematics", ref.Subject.ID)
		assert.Equal(t, "algebra", ref.Group.ID)
		assert.Equal(t, "linear-equations", ref.Topic.ID)
		assert.Len(t, c.Subjects, 1)
	})

	t.Run("reuses existing entries case-insensitively", func(t *testing.T) {
		c := &Catalog{}
		_, err := c.EnsureTopic("Mathematics", "Algebra", "Linear Equations")
		require.NoError(t, err)

		ref, err := c.EnsureTopic("mathematics", "ALGEBRA", "linear equations")

		require.NoError(t, err)
		assert.Equal(t, "Linear Equations", ref.Topic.Name)
		assert.Len(t, c.Subjects, 1)
		assert.Len(t, c.Subjects[0].Groups, 1)
		assert.Len(t, c.Subjects[0].Groups[0].Topics, 1)
	})

	t.Run("defaults empty group", func(t *testing.T) {
		c := &Catalog{}

		ref, err := c.EnsureTopic("History", "", "Renaissance")

		require.NoError(t, err)
		assert.Equal(t, "General", ref.Group.Name)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		c := &Catalog{}

		_, err := c.EnsureTopic(" ", "x", "y")

		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestCatalog_FindTopic(t *testing.T) {
	c := &Catalog{}
	_, err := c.EnsureTopic("Biology", "Cells", "Mitosis")
	require.NoError(t, err)

	ref, err := c.FindTopic("biology", "mitosis")
	require.NoError(t, err)
	assert.Equal(t, "Mitosis", ref.Topic.Name)

	_, err = c.FindTopic("chemistry", "mitosis")
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	_, err = c.FindTopic("biology", "meiosis")
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "linear-equations", Slug("  Linear   Equations "))
	assert.Equal(t, "história-do-brasil", Slug("História do Brasil"))
	assert.Equal(t, "a1-b2", Slug("A1 / B2!"))
}

func TestComputeStats(t *testing.T) {
	subjects := []Subject{
		{ID: "math", Name: "Math", Groups: []TopicGroup{{Topics: []Topic{
			{Name: "a", Studied: true, QuestionsTotal: 10, QuestionsCorrect: 8},
			{Name: "b", QuestionsTotal: 10, QuestionsCorrect: 2},
		}}}},
		{ID: "bio", Name: "Biology", Groups: []TopicGroup{{Topics: []Topic{
			{Name: "c", Studied: true},
		}}}},
	}

	stats := ComputeStats(subjects)

	assert.Equal(t, 3, stats.TotalTopics)
	assert.Equal(t, 2, stats.StudiedTopics)
	assert.Equal(t, 20, stats.QuestionsTotal)
	assert.Equal(t, 10, stats.QuestionsCorrect)
	assert.InDelta(t, 0.5, stats.Accuracy, 0.0001)
	assert.InDelta(t, 2.0/3.0, stats.Progress(), 0.0001)

	perSubject := ComputeSubjectStats(subjects)
	require.Len(t, perSubject, 2)
	assert.Equal(t, "math", perSubject[0].SubjectID)
	assert.Equal(t, 2, perSubject[0].TotalTopics)
	assert.Equal(t, 1, perSubject[1].StudiedTopics)
	assert.Zero(t, perSubject[1].Accuracy)
}

func TestDatePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-03", "2024-01-03", true},
		{"2024-01-03T10:15:00Z", "2024-01-03", true},
		{"2024-1-3", "", false},
		{"2024-13-01", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := DatePrefix(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDeadline(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		deadline string
		urgency  DeadlineUrgency
		label    string
	}{
		{"", DeadlineNone, "no deadline"},
		{"garbage", DeadlineNone, "no deadline"},
		{"2024-03-08", DeadlineOverdue, "overdue by 2 days"},
		{"2024-03-10", DeadlineUrgent, "due today"},
		{"2024-03-11", DeadlineUrgent, "in 1 day"},
		{"2024-03-15", DeadlineSoon, "in 5 days"},
		{"2024-04-10", DeadlineOK, "in 31 days"},
	}
	for _, tt := range tests {
		t.Run(tt.deadline, func(t *testing.T) {
			got := ClassifyDeadline(tt.deadline, now)
			assert.Equal(t, tt.urgency, got.Urgency)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}

func TestClassifyReview(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, ReviewNone, ClassifyReview("", now).Class)
	assert.Equal(t, ReviewOverdue, ClassifyReview("2024-03-09", now).Class)
	assert.Equal(t, ReviewToday, ClassifyReview("2024-03-10", now).Class)
	assert.Equal(t, "review tomorrow", ClassifyReview("2024-03-11", now).Label)
	assert.Equal(t, ReviewSoon, ClassifyReview("2024-03-13", now).Class)
	assert.Equal(t, ReviewLater, ClassifyReview("2024-03-20T00:00:00Z", now).Class)
}
