package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
)

// ErrInvalidScore indicates an essay score outside 0..1000.
var ErrInvalidScore = errors.New("essay score must be between 0 and 1000")

// AddEssayCommand records a written essay.
type AddEssayCommand struct {
	Title string
	Date  string
	Score int
}

// AddEssayHandler handles add essay commands.
type AddEssayHandler struct {
	repo domain.CatalogRepository
	now  func() time.Time
}

// NewAddEssayHandler creates a new add essay handler.
func NewAddEssayHandler(repo domain.CatalogRepository) *AddEssayHandler {
	return &AddEssayHandler{repo: repo, now: time.Now}
}

// Handle appends the essay to the catalog.
func (h *AddEssayHandler) Handle(ctx context.Context, cmd AddEssayCommand) (*domain.Essay, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, domain.ErrEmptyName
	}
	date := cmd.Date
	if date == "" {
		date = domain.FormatDate(h.now())
	}
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if cmd.Score < 0 || cmd.Score > 1000 {
		return nil, ErrInvalidScore
	}

	catalog, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	essay := domain.Essay{ID: uuid.New().String(), Title: title, Date: date, Score: cmd.Score}
	catalog.Essays = append(catalog.Essays, essay)

	if err := h.repo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	return &essay, nil
}
