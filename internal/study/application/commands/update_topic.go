package commands

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// UpdateTopicCommand changes a topic's study flag or deadline. Nil fields are
// left untouched; an empty deadline clears it.
type UpdateTopicCommand struct {
	Subject     string
	Topic       string
	Studied     *bool
	DateStudied string
	Deadline    *string
}

// UpdateTopicHandler handles update topic commands.
type UpdateTopicHandler struct {
	repo domain.CatalogRepository
}

// NewUpdateTopicHandler creates a new update topic handler.
func NewUpdateTopicHandler(repo domain.CatalogRepository) *UpdateTopicHandler {
	return &UpdateTopicHandler{repo: repo}
}

// Handle applies the update.
func (h *UpdateTopicHandler) Handle(ctx context.Context, cmd UpdateTopicCommand) (*domain.Topic, error) {
	if cmd.DateStudied != "" && !domain.ValidDate(cmd.DateStudied) {
		return nil, ErrInvalidDate
	}
	if cmd.Deadline != nil && *cmd.Deadline != "" && !domain.ValidDate(*cmd.Deadline) {
		return nil, ErrInvalidDate
	}

	catalog, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := catalog.FindTopic(cmd.Subject, cmd.Topic)
	if err != nil {
		return nil, err
	}

	t := ref.Topic
	if cmd.Studied != nil {
		t.Studied = *cmd.Studied
		if !t.Studied {
			t.DateStudied = ""
		}
	}
	if cmd.DateStudied != "" {
		t.DateStudied = cmd.DateStudied
	}
	if cmd.Deadline != nil {
		t.Deadline = *cmd.Deadline
	}

	if err := h.repo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	topic := *t
	return &topic, nil
}
