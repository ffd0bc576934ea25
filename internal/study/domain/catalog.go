package domain

import (
	"context"
	"errors"
	"strings"
)

// Essay is a written practice piece counted toward the weekly essay goal.
type Essay struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Score int    `json:"score,omitempty"`
}

// Catalog is the whole persisted study collection.
type Catalog struct {
	Subjects []Subject `json:"subjects"`
	Essays   []Essay   `json:"essays,omitempty"`
}

// Errors
var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrEmptyName       = errors.New("name must not be empty")
)

// CatalogRepository reads and writes the catalog as one collection.
type CatalogRepository interface {
	// Load returns the stored catalog, or an empty one when nothing is stored.
	Load(ctx context.Context) (*Catalog, error)

	// Save replaces the stored catalog.
	Save(ctx context.Context, catalog *Catalog) error
}

// FindTopic looks a topic up by subject and topic id or name (case-insensitive).
func (c *Catalog) FindTopic(subject, topic string) (TopicRef, error) {
	s := c.findSubject(subject)
	if s == nil {
		return TopicRef{}, ErrSubjectNotFound
	}
	for gi := range s.Groups {
		group := &s.Groups[gi]
		for ti := range group.Topics {
			if matches(group.Topics[ti].ID, group.Topics[ti].Name, topic) {
				return TopicRef{Subject: s, Group: group, Topic: &group.Topics[ti]}, nil
			}
		}
	}
	return TopicRef{}, ErrTopicNotFound
}

// EnsureTopic returns the named topic, creating the subject, group and topic
// as needed. The returned reference is valid until the catalog is next mutated.
func (c *Catalog) EnsureTopic(subject, group, topic string) (TopicRef, error) {
	subject, group, topic = strings.TrimSpace(subject), strings.TrimSpace(group), strings.TrimSpace(topic)
	if subject == "" || topic == "" {
		return TopicRef{}, ErrEmptyName
	}
	if group == "" {
		group = "General"
	}

	s := c.findSubject(subject)
	if s == nil {
		c.Subjects = append(c.Subjects, Subject{ID: Slug(subject), Name: subject})
		s = &c.Subjects[len(c.Subjects)-1]
	}

	var g *TopicGroup
	for gi := range s.Groups {
		if matches(s.Groups[gi].ID, s.Groups[gi].Name, group) {
			g = &s.Groups[gi]
			break
		}
	}
	if g == nil {
		s.Groups = append(s.Groups, TopicGroup{ID: Slug(group), Name: group})
		g = &s.Groups[len(s.Groups)-1]
	}

	for ti := range g.Topics {
		if matches(g.Topics[ti].ID, g.Topics[ti].Name, topic) {
			return TopicRef{Subject: s, Group: g, Topic: &g.Topics[ti]}, nil
		}
	}
	g.Topics = append(g.Topics, Topic{ID: Slug(topic), Name: topic})
	return TopicRef{Subject: s, Group: g, Topic: &g.Topics[len(g.Topics)-1]}, nil
}

// FindSubject looks a subject up by id or name (case-insensitive).
func (c *Catalog) FindSubject(key string) (*Subject, error) {
	if s := c.findSubject(key); s != nil {
		return s, nil
	}
	return nil, ErrSubjectNotFound
}

func (c *Catalog) findSubject(key string) *Subject {
	for si := range c.Subjects {
		if matches(c.Subjects[si].ID, c.Subjects[si].Name, key) {
			return &c.Subjects[si]
		}
	}
	return nil
}

func matches(id, name, key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && (id == key || strings.EqualFold(name, key))
}

// Slug derives a stable identifier from a display name.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
