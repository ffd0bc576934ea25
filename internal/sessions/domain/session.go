// Package domain models timed study sessions: the stopwatch that produces
// them and the rolling ledger that keeps them.
package domain

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

// SessionType classifies what a session was spent on.
type SessionType string

const (
	SessionStudy     SessionType = "study"
	SessionReview    SessionType = "review"
	SessionQuestions SessionType = "questions"
	SessionEssay     SessionType = "essay"
)

// ErrInvalidSessionType is returned for an unknown session type.
var ErrInvalidSessionType = errors.New("invalid session type")

// ParseSessionType parses a type name. Empty input means SessionStudy.
func ParseSessionType(s string) (SessionType, error) {
	switch t := SessionType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return SessionStudy, nil
	case SessionStudy, SessionReview, SessionQuestions, SessionEssay:
		return t, nil
	}
	return "", ErrInvalidSessionType
}

// StudySession is one completed timed session.
type StudySession struct {
	ID              string      `json:"id"`
	SubjectID       string      `json:"subjectId"`
	StartTime       time.Time   `json:"startTime"`
	EndTime         time.Time   `json:"endTime"`
	DurationMinutes int         `json:"durationMinutes"`
	Type            SessionType `json:"type"`
}

// SessionDraft is a finished session before the ledger assigns its id.
type SessionDraft struct {
	SubjectID string
	Start     time.Time
	End       time.Time
	Type      SessionType
}

// DurationMinutes rounds the elapsed time to whole minutes. An end before
// the start counts as zero.
func (d SessionDraft) DurationMinutes() int {
	elapsed := d.End.Sub(d.Start)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(elapsed.Minutes()))
}

// Repository persists the whole session collection.
type Repository interface {
	Load(ctx context.Context) ([]StudySession, error)
	Save(ctx context.Context, sessions []StudySession) error
}
