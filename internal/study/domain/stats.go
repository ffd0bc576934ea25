package domain

// OverallStats aggregates progress across the whole catalog.
type OverallStats struct {
	TotalTopics      int     `json:"totalTopics"`
	StudiedTopics    int     `json:"studiedTopics"`
	QuestionsTotal   int     `json:"questionsTotal"`
	QuestionsCorrect int     `json:"questionsCorrect"`
	Accuracy         float64 `json:"accuracy"`
}

// SubjectStats aggregates progress for a single subject.
type SubjectStats struct {
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	OverallStats
}

// Progress returns the studied share of topics in [0, 1].
func (s OverallStats) Progress() float64 {
	if s.TotalTopics == 0 {
		return 0
	}
	return float64(s.StudiedTopics) / float64(s.TotalTopics)
}

// ComputeStats aggregates totals over every topic in subjects.
func ComputeStats(subjects []Subject) OverallStats {
	var stats OverallStats
	EachTopic(subjects, func(ref TopicRef) {
		accumulate(&stats, ref.Topic)
	})
	stats.Accuracy = ratio(stats.QuestionsCorrect, stats.QuestionsTotal)
	return stats
}

// ComputeSubjectStats aggregates totals per subject, in catalog order.
func ComputeSubjectStats(subjects []Subject) []SubjectStats {
	out := make([]SubjectStats, 0, len(subjects))
	for _, subject := range subjects {
		s := SubjectStats{SubjectID: subject.ID, SubjectName: subject.Name}
		for _, group := range subject.Groups {
			for i := range group.Topics {
				accumulate(&s.OverallStats, &group.Topics[i])
			}
		}
		s.Accuracy = ratio(s.QuestionsCorrect, s.QuestionsTotal)
		out = append(out, s)
	}
	return out
}

func accumulate(stats *OverallStats, t *Topic) {
	stats.TotalTopics++
	if t.Studied {
		stats.StudiedTopics++
	}
	if t.QuestionsTotal > 0 {
		stats.QuestionsTotal += t.QuestionsTotal
	}
	if t.QuestionsCorrect > 0 {
		stats.QuestionsCorrect += t.QuestionsCorrect
	}
}

func ratio(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
