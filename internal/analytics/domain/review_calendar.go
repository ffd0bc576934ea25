package domain

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	study "github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// Collator orders topic names.
type Collator interface {
	CompareString(a, b string) int
}

// NewTopicCollator returns a case-insensitive collator for the BCP 47 tag.
// Unknown tags fall back to the root collation.
func NewTopicCollator(tag string) Collator {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.Und
	}
	return collate.New(lang, collate.IgnoreCase)
}

// ReviewItem is a topic scheduled for review.
type ReviewItem struct {
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	TopicID     string `json:"topicId"`
	TopicName   string `json:"topicName"`
	Date        string `json:"date"`
}

// WeeklyReviewDay holds the reviews due on one day of the current week.
type WeeklyReviewDay struct {
	Date    string       `json:"date"`
	Weekday string       `json:"weekday"`
	IsToday bool         `json:"isToday"`
	Topics  []ReviewItem `json:"topics"`
}

// WeeklyReviewCalendar buckets topics whose next review falls in the current
// week into its seven days, Monday first. A nil collator sorts by byte order.
func WeeklyReviewCalendar(subjects []study.Subject, now time.Time, coll Collator) []WeeklyReviewDay {
	week := CurrentWeek(now)
	today := study.FormatDate(now)

	days := make([]WeeklyReviewDay, 0, WeekDays)
	index := make(map[string]int, WeekDays)
	for i, d := range week.Days() {
		date := study.FormatDate(d)
		index[date] = i
		days = append(days, WeeklyReviewDay{
			Date:    date,
			Weekday: d.Weekday().String(),
			IsToday: date == today,
			Topics:  []ReviewItem{},
		})
	}

	study.EachTopic(subjects, func(ref study.TopicRef) {
		date, ok := study.DatePrefix(ref.Topic.FSRSNextReview)
		if !ok {
			return
		}
		i, ok := index[date]
		if !ok {
			return
		}
		days[i].Topics = append(days[i].Topics, ReviewItem{
			SubjectID:   ref.Subject.ID,
			SubjectName: ref.Subject.Name,
			TopicID:     ref.Topic.ID,
			TopicName:   ref.Topic.Name,
			Date:        date,
		})
	})

	for i := range days {
		topics := days[i].Topics
		sort.SliceStable(topics, func(a, b int) bool {
			if coll == nil {
				return topics[a].TopicName < topics[b].TopicName
			}
			return coll.CompareString(topics[a].TopicName, topics[b].TopicName) < 0
		})
	}
	return days
}

// DueReviews lists topics whose next review is today or earlier, oldest due
// date first.
func DueReviews(subjects []study.Subject, now time.Time) []ReviewItem {
	today := study.FormatDate(now)
	var out []ReviewItem
	study.EachTopic(subjects, func(ref study.TopicRef) {
		date, ok := study.DatePrefix(ref.Topic.FSRSNextReview)
		if !ok || date > today {
			return
		}
		out = append(out, ReviewItem{
			SubjectID:   ref.Subject.ID,
			SubjectName: ref.Subject.Name,
			TopicID:     ref.Topic.ID,
			TopicName:   ref.Topic.Name,
			Date:        date,
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// DueReviewCount counts topics whose next review is today or earlier.
func DueReviewCount(subjects []study.Subject, now time.Time) int {
	return len(DueReviews(subjects, now))
}

// CountReviewsInWeek counts review-history snapshots dated within w.
func CountReviewsInWeek(subjects []study.Subject, w Week) int {
	count := 0
	study.EachTopic(subjects, func(ref study.TopicRef) {
		for _, snap := range ref.Topic.ReviewHistory {
			if date, ok := study.DatePrefix(snap.Date); ok && w.Contains(date) {
				count++
			}
		}
	})
	return count
}

// CountEssaysInWeek counts essays dated within w.
func CountEssaysInWeek(essays []study.Essay, w Week) int {
	count := 0
	for _, e := range essays {
		if date, ok := study.DatePrefix(e.Date); ok && w.Contains(date) {
			count++
		}
	}
	return count
}
