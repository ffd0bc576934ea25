package domain

// GoalProgress is the current value of one target.
type GoalProgress struct {
	Field   GoalField `json:"field"`
	Current int       `json:"current"`
	Target  int       `json:"target"`
}

// Ratio returns progress in [0, 1].
func (p GoalProgress) Ratio() float64 {
	if p.Target <= 0 {
		return 0
	}
	r := float64(p.Current) / float64(p.Target)
	if r > 1 {
		return 1
	}
	return r
}

// Achieved reports whether the target has been met.
func (p GoalProgress) Achieved() bool {
	return p.Target > 0 && p.Current >= p.Target
}

// Progress pairs today's questions and this week's reviews and essays with
// their targets.
func Progress(g StudyGoals, questionsToday, reviewsThisWeek, essaysThisWeek int) []GoalProgress {
	return []GoalProgress{
		{Field: FieldDailyQuestions, Current: questionsToday, Target: g.DailyQuestionsTarget},
		{Field: FieldWeeklyReviews, Current: reviewsThisWeek, Target: g.WeeklyReviewTarget},
		{Field: FieldWeeklyEssays, Current: essaysThisWeek, Target: g.WeeklyEssayTarget},
	}
}
