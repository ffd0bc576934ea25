package commands

import (
	"context"

	"github.com/felixgeelhaar/studyflow/internal/study/domain"
	"github.com/felixgeelhaar/studyflow/internal/study/infrastructure/importer"
)

// ReadFunc parses a topic spreadsheet.
type ReadFunc func(path, sheet string) (*importer.Result, error)

// ImportTopicsCommand merges a spreadsheet into the catalog.
type ImportTopicsCommand struct {
	Path  string
	Sheet string
}

// ImportTopicsResult summarizes an import.
type ImportTopicsResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportTopicsHandler handles import topics commands.
type ImportTopicsHandler struct {
	repo domain.CatalogRepository
	read ReadFunc
}

// NewImportTopicsHandler creates a new import handler. A nil read uses the
// spreadsheet importer.
func NewImportTopicsHandler(repo domain.CatalogRepository, read ReadFunc) *ImportTopicsHandler {
	if read == nil {
		read = importer.ReadFile
	}
	return &ImportTopicsHandler{repo: repo, read: read}
}

// Handle reads the file and merges every row. Existing topics get their
// scalar fields overwritten only by non-empty cells; activity logs and review
// history are never touched.
func (h *ImportTopicsHandler) Handle(ctx context.Context, cmd ImportTopicsCommand) (*ImportTopicsResult, error) {
	parsed, err := h.read(cmd.Path, cmd.Sheet)
	if err != nil {
		return nil, err
	}

	catalog, err := h.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportTopicsResult{Errors: parsed.Errors}
	for _, row := range parsed.Rows {
		_, findErr := catalog.FindTopic(row.Subject, row.Topic)
		ref, err := catalog.EnsureTopic(row.Subject, row.Group, row.Topic)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if findErr == nil {
			result.Updated++
		} else {
			result.Created++
		}
		applyRow(ref.Topic, row)
	}

	if err := h.repo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	return result, nil
}

func applyRow(t *domain.Topic, row importer.Row) {
	if row.Studied {
		t.Studied = true
	}
	if d, ok := domain.DatePrefix(row.DateStudied); ok {
		t.DateStudied = d
	}
	if row.QuestionsTotal > 0 {
		t.QuestionsTotal = row.QuestionsTotal
		t.QuestionsCorrect = min(row.QuestionsCorrect, row.QuestionsTotal)
	}
	if d, ok := domain.DatePrefix(row.Deadline); ok {
		t.Deadline = d
	}
	if d, ok := domain.DatePrefix(row.NextReview); ok {
		t.FSRSNextReview = d
	}
}
