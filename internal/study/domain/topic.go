// Package domain contains the study catalog: subjects, topic groups, topics
// and the activity records attached to them.
package domain

// QuestionLog is an explicit dated record of questions answered for a topic.
type QuestionLog struct {
	Date             string `json:"date"`
	QuestionsMade    int    `json:"questionsMade"`
	QuestionsCorrect int    `json:"questionsCorrect"`
}

// ReviewSnapshot stores cumulative question totals as of a review date.
type ReviewSnapshot struct {
	Date             string `json:"date"`
	QuestionsTotal   int    `json:"questionsTotal"`
	QuestionsCorrect int    `json:"questionsCorrect"`
}

// Topic is the atomic unit of study content.
type Topic struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Studied          bool             `json:"studied"`
	DateStudied      string           `json:"dateStudied,omitempty"`
	QuestionsTotal   int              `json:"questionsTotal"`
	QuestionsCorrect int              `json:"questionsCorrect"`
	QuestionLogs     []QuestionLog    `json:"questionLogs,omitempty"`
	ReviewHistory    []ReviewSnapshot `json:"reviewHistory,omitempty"`
	FSRSNextReview   string           `json:"fsrsNextReview,omitempty"`
	Deadline         string           `json:"deadline,omitempty"`
}

// TopicGroup is a named collection of topics within a subject.
type TopicGroup struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// Subject is the top-level grouping of study content.
type Subject struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Color  string       `json:"color,omitempty"`
	Groups []TopicGroup `json:"groups"`
}

// TopicRef locates a topic inside the subject tree.
type TopicRef struct {
	Subject *Subject
	Group   *TopicGroup
	Topic   *Topic
}

// EachTopic calls fn for every topic in subjects, in tree order.
func EachTopic(subjects []Subject, fn func(ref TopicRef)) {
	for si := range subjects {
		subject := &subjects[si]
		for gi := range subject.Groups {
			group := &subject.Groups[gi]
			for ti := range group.Topics {
				fn(TopicRef{Subject: subject, Group: group, Topic: &group.Topics[ti]})
			}
		}
	}
}

// CountTopics returns the number of topics across all subjects.
func CountTopics(subjects []Subject) int {
	n := 0
	for _, s := range subjects {
		for _, g := range s.Groups {
			n += len(g.Topics)
		}
	}
	return n
}
