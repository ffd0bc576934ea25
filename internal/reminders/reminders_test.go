package reminders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/internal/analytics/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/analytics/domain"
	goals "github.com/felixgeelhaar/studyflow/internal/goals/domain"
	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

type stubDashboard struct {
	view *queries.DashboardView
	err  error
}

func (s stubDashboard) Dashboard(context.Context, queries.GetDashboardQuery) (*queries.DashboardView, error) {
	return s.view, s.err
}

func busyView() *queries.DashboardView {
	due := make([]domain.ReviewItem, 7)
	for i := range due {
		due[i] = domain.ReviewItem{SubjectName: "Math", TopicName: "Topic " + string(rune('A'+i))}
	}
	return &queries.DashboardView{
		Today:        "2024-03-10",
		Due:          due,
		DueReviews:   len(due),
		Streak:       domain.StreakInfo{Current: 4, Longest: 9},
		GoalProgress: goals.Progress(goals.DefaultGoals(), 12, 0, 0),
		Deadlines: []queries.DeadlineView{
			{SubjectName: "Bio", TopicName: "Cells", Status: study.DeadlineStatus{Urgency: study.DeadlineUrgent, Label: "due today"}},
			{SubjectName: "Bio", TopicName: "Genes", Status: study.DeadlineStatus{Urgency: study.DeadlineOK, Label: "in 20 days"}},
		},
	}
}

func TestBuildMessage(t *testing.T) {
	t.Run("lists due reviews, goal gap and urgent deadlines", func(t *testing.T) {
		msg, ok := BuildMessage(busyView())

		require.True(t, ok)
		assert.Equal(t, "StudyFlow: 2024-03-10", msg.Title)
		assert.Contains(t, msg.Body, "7 review(s) due")
		assert.Contains(t, msg.Body, "  - Topic A (Math)")
		assert.Contains(t, msg.Body, "  ... and 2 more")
		assert.NotContains(t, msg.Body, "Topic F")
		assert.Contains(t, msg.Body, "12 of 30 questions answered today")
		assert.Contains(t, msg.Body, "Deadline: Cells (Bio) due today")
		assert.NotContains(t, msg.Body, "Genes")
		assert.True(t, strings.HasSuffix(msg.Body, "Keep your 4-day streak going."))
	})

	t.Run("nothing to remind", func(t *testing.T) {
		view := &queries.DashboardView{
			Today:        "2024-03-10",
			GoalProgress: goals.Progress(goals.DefaultGoals(), 30, 0, 0),
		}

		_, ok := BuildMessage(view)

		assert.False(t, ok)
	})
}

func TestJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and counts", func(t *testing.T) {
		n := new(mockNotifier)
		n.On("Notify", mock.Anything, mock.AnythingOfType("reminders.Message")).Return(nil)
		metrics := observability.NewInMemoryMetrics()
		job := NewJob(stubDashboard{view: busyView()}, n, metrics, observability.NopLogger())

		sent, err := job.Run(ctx)

		require.NoError(t, err)
		assert.True(t, sent)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricRemindersSent))
		n.AssertExpectations(t)
	})

	t.Run("skips when idle", func(t *testing.T) {
		n := new(mockNotifier)
		view := &queries.DashboardView{GoalProgress: goals.Progress(goals.DefaultGoals(), 50, 0, 0)}
		job := NewJob(stubDashboard{view: view}, n, nil, observability.NopLogger())

		sent, err := job.Run(ctx)

		require.NoError(t, err)
		assert.False(t, sent)
		n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("dashboard error", func(t *testing.T) {
		job := NewJob(stubDashboard{err: errors.New("store down")}, new(mockNotifier), nil, observability.NopLogger())

		_, err := job.Run(ctx)

		assert.ErrorContains(t, err, "store down")
	})
}

func TestTelegramNotifier(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		return ok && msg.ChatID == 42 && msg.Text == "Title\n\nBody"
	})).Return(nil).Once()
	sender.On("Send", mock.Anything).Return(errors.New("forbidden")).Once()

	n := NewTelegramNotifierWithSender(sender, 42)

	require.NoError(t, n.Notify(context.Background(), Message{Title: "Title", Body: "Body"}))
	assert.ErrorContains(t, n.Notify(context.Background(), Message{Title: "x"}), "forbidden")
}

func TestDesktopNotifier(t *testing.T) {
	var got []string
	n := &DesktopNotifier{notify: func(title, message string, _ any) error {
		got = append(got, title, message)
		return nil
	}}

	require.NoError(t, n.Notify(context.Background(), Message{Title: "T", Body: "B"}))
	assert.Equal(t, []string{"T", "B"}, got)
}

func TestMultiNotifier(t *testing.T) {
	ok := new(mockNotifier)
	ok.On("Notify", mock.Anything, mock.Anything).Return(nil)
	bad := new(mockNotifier)
	bad.On("Notify", mock.Anything, mock.Anything).Return(errors.New("offline"))

	err := MultiNotifier{bad, ok}.Notify(context.Background(), Message{})

	assert.ErrorContains(t, err, "offline")
	ok.AssertCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestNewScheduler(t *testing.T) {
	job := NewJob(stubDashboard{view: &queries.DashboardView{}}, MultiNotifier{}, nil, observability.NopLogger())

	_, err := NewScheduler(job, "8am", time.UTC, nil)
	assert.ErrorIs(t, err, ErrInvalidTime)

	s, err := NewScheduler(job, "07:30", time.UTC, observability.NopLogger())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	next := s.NextRun()
	assert.Equal(t, 7, next.Hour())
	assert.Equal(t, 30, next.Minute())
}
