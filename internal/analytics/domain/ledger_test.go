package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

func subjectWith(topics ...study.Topic) []study.Subject {
	return []study.Subject{{
		ID:     "math",
		Name:   "Math",
		Groups: []study.TopicGroup{{ID: "general", Name: "General", Topics: topics}},
	}}
}

func TestBuildLedger_ReviewHistoryDeltas(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	subjects := subjectWith(study.Topic{Name: "Fractions", ReviewHistory: []study.ReviewSnapshot{
		{Date: "2024-01-01", QuestionsTotal: 5, QuestionsCorrect: 3},
		{Date: "2024-01-03", QuestionsTotal: 8, QuestionsCorrect: 5},
	}})

	l := BuildLedger(subjects, now)

	require.Equal(t, 2, l.Len())
	first, ok := l.Get("2024-01-01")
	require.True(t, ok)
	assert.Equal(t, 5, first.QuestionsMade)
	assert.Equal(t, 3, first.QuestionsCorrect)
	assert.Equal(t, 5, first.Total)

	second, ok := l.Get("2024-01-03")
	require.True(t, ok)
	assert.Equal(t, 3, second.QuestionsMade)
	assert.Equal(t, 2, second.QuestionsCorrect)
}

func TestBuildLedger_HistoryOrderingAndCorrections(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("sorts snapshots before computing deltas", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "2024-01-03", QuestionsTotal: 8, QuestionsCorrect: 5},
			{Date: "2024-01-01", QuestionsTotal: 5, QuestionsCorrect: 3},
		}}), now)

		assert.Equal(t, 5, l.Day("2024-01-01").QuestionsMade)
		assert.Equal(t, 3, l.Day("2024-01-03").QuestionsMade)
	})

	t.Run("corrected snapshot never goes negative", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "2024-01-01", QuestionsTotal: 5, QuestionsCorrect: 3},
			{Date: "2024-01-02", QuestionsTotal: 4, QuestionsCorrect: 2},
			{Date: "2024-01-03", QuestionsTotal: 8, QuestionsCorrect: 5},
		}}), now)

		day, ok := l.Get("2024-01-02")
		require.True(t, ok)
		assert.Zero(t, day.QuestionsMade)
		assert.Zero(t, day.QuestionsCorrect)
		assert.Equal(t, 3, l.Day("2024-01-03").QuestionsMade)
		assert.Equal(t, 8, SumMade(l.Days()))
	})

	t.Run("drops malformed dates", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "yesterday", QuestionsTotal: 50},
			{Date: "2024-01-02", QuestionsTotal: 4, QuestionsCorrect: 2},
		}}), now)

		assert.Equal(t, []string{"2024-01-02"}, l.Dates())
		assert.Equal(t, 4, l.Day("2024-01-02").QuestionsMade)
	})
}

func TestBuildLedger_TimestampedDates(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("history snapshots use the date portion", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "2024-01-03T18:30:00Z", QuestionsTotal: 8, QuestionsCorrect: 5},
			{Date: "2024-01-01T10:00:00Z", QuestionsTotal: 5, QuestionsCorrect: 3},
		}}), now)

		assert.Equal(t, []string{"2024-01-01", "2024-01-03"}, l.Dates())
		assert.Equal(t, 5, l.Day("2024-01-01").QuestionsMade)
		assert.Equal(t, 3, l.Day("2024-01-01").QuestionsCorrect)
		assert.Equal(t, 3, l.Day("2024-01-03").QuestionsMade)
		assert.Equal(t, 2, l.Day("2024-01-03").QuestionsCorrect)
	})

	t.Run("same-day snapshots stay chronological", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "2024-01-02T20:00:00Z", QuestionsTotal: 9, QuestionsCorrect: 6},
			{Date: "2024-01-02T08:00:00Z", QuestionsTotal: 4, QuestionsCorrect: 2},
		}}), now)

		require.Equal(t, 1, l.Len())
		assert.Equal(t, 9, l.Day("2024-01-02").QuestionsMade)
		assert.Equal(t, 6, l.Day("2024-01-02").QuestionsCorrect)
	})

	t.Run("single timestamped snapshot", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "2024-01-01T10:00:00Z", QuestionsTotal: 5},
		}}), now)

		assert.Equal(t, 5, l.Day("2024-01-01").QuestionsMade)
	})

	t.Run("question logs use the date portion", func(t *testing.T) {
		l := BuildLedger(subjectWith(study.Topic{QuestionLogs: []study.QuestionLog{
			{Date: "2024-01-04T09:15:00Z", QuestionsMade: 7, QuestionsCorrect: 4},
		}}), now)

		assert.Equal(t, 7, l.Day("2024-01-04").QuestionsMade)
	})
}

func TestBuildLedger_DeltaSumMatchesFinalTotal(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	history := []study.ReviewSnapshot{
		{Date: "2024-01-02", QuestionsTotal: 0},
		{Date: "2024-01-05", QuestionsTotal: 7, QuestionsCorrect: 4},
		{Date: "2024-01-09", QuestionsTotal: 7, QuestionsCorrect: 6},
		{Date: "2024-01-20", QuestionsTotal: 19, QuestionsCorrect: 11},
	}

	l := BuildLedger(subjectWith(study.Topic{ReviewHistory: history}), now)

	assert.Equal(t, 19, SumMade(l.Days()))
}

func TestBuildLedger_QuestionLogs(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	l := BuildLedger(subjectWith(
		study.Topic{
			QuestionLogs: []study.QuestionLog{
				{Date: "2024-01-04", QuestionsMade: 10, QuestionsCorrect: 7},
				{Date: "2024-01-04", QuestionsMade: 2, QuestionsCorrect: 5},
				{Date: "04/01/2024", QuestionsMade: 99},
				{Date: "2024-01-05", QuestionsMade: -3, QuestionsCorrect: -1},
			},
			ReviewHistory: []study.ReviewSnapshot{{Date: "2024-01-06", QuestionsTotal: 40}},
		},
		study.Topic{QuestionLogs: []study.QuestionLog{{Date: "2024-01-04", QuestionsMade: 3, QuestionsCorrect: 3}}},
	), now)

	assert.Equal(t, []string{"2024-01-04", "2024-01-05"}, l.Dates())
	day := l.Day("2024-01-04")
	assert.Equal(t, 15, day.QuestionsMade)
	assert.Equal(t, 15, day.QuestionsCorrect)
	assert.Equal(t, 15, day.Total)
	assert.Zero(t, l.Day("2024-01-05").QuestionsMade)
}

func TestBuildLedger_Fallback(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

	l := BuildLedger(subjectWith(
		study.Topic{QuestionsTotal: 12, QuestionsCorrect: 9, DateStudied: "2024-02-10T12:00:00Z"},
		study.Topic{QuestionsTotal: 4, QuestionsCorrect: 6},
		study.Topic{Name: "untouched"},
	), now)

	assert.Equal(t, []string{"2024-02-10", "2024-03-10"}, l.Dates())
	assert.Equal(t, 12, l.Day("2024-02-10").QuestionsMade)
	today := l.Day("2024-03-10")
	assert.Equal(t, 4, today.QuestionsMade)
	assert.Equal(t, 4, today.QuestionsCorrect)
}

func TestSourceFor(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		topic study.Topic
		want  SourceKind
	}{
		{"logs win", study.Topic{
			QuestionLogs:   []study.QuestionLog{{Date: "2024-01-01"}},
			ReviewHistory:  []study.ReviewSnapshot{{Date: "2024-01-01"}},
			QuestionsTotal: 3,
		}, SourceLogs},
		{"history before total", study.Topic{
			ReviewHistory:  []study.ReviewSnapshot{{Date: "2024-01-01"}},
			QuestionsTotal: 3,
		}, SourceHistory},
		{"total only", study.Topic{QuestionsTotal: 3}, SourceFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := SourceFor(tt.topic, today)
			require.NotNil(t, src)
			assert.Equal(t, tt.want, src.Kind())
		})
	}

	t.Run("no activity", func(t *testing.T) {
		assert.Nil(t, SourceFor(study.Topic{Name: "empty"}, today))
	})

	t.Run("fallback uses today without a study date", func(t *testing.T) {
		src := SourceFor(study.Topic{QuestionsTotal: 2, DateStudied: "soon"}, today)
		fb, ok := src.(FallbackSource)
		require.True(t, ok)
		assert.Equal(t, "2024-03-10", fb.Date)
	})
}

func TestLedger_NonNegative(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	l := BuildLedger(subjectWith(
		study.Topic{QuestionLogs: []study.QuestionLog{
			{Date: "2024-03-01", QuestionsMade: -4, QuestionsCorrect: 8},
			{Date: "2024-03-02", QuestionsMade: 1, QuestionsCorrect: 9},
		}},
		study.Topic{ReviewHistory: []study.ReviewSnapshot{
			{Date: "2024-03-01", QuestionsTotal: 10, QuestionsCorrect: 1},
			{Date: "2024-03-03", QuestionsTotal: 2, QuestionsCorrect: 30},
		}},
		study.Topic{QuestionsTotal: 1, QuestionsCorrect: 100},
	), now)

	for _, day := range l.Days() {
		assert.GreaterOrEqual(t, day.QuestionsMade, 0, day.Date)
		assert.GreaterOrEqual(t, day.QuestionsCorrect, 0, day.Date)
		assert.LessOrEqual(t, day.QuestionsCorrect, day.QuestionsMade, day.Date)
		assert.Equal(t, day.QuestionsMade, day.Total, day.Date)
	}
}

func TestLedger_ReadOnlyAccessors(t *testing.T) {
	l := LedgerFromDays(
		ActivityDay{Date: "2024-01-02", QuestionsMade: 1},
		ActivityDay{Date: "2024-01-01", QuestionsMade: 0},
		ActivityDay{Date: "bad"},
	)

	dates := l.Dates()
	dates[0] = "mutated"

	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, l.Dates())
	earliest, ok := l.EarliestDate()
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", earliest)
	assert.Equal(t, []string{"2024-01-02"}, l.ActiveDates())

	_, ok = LedgerFromDays().EarliestDate()
	assert.False(t, ok)
}
