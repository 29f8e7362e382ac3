package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// ListArchiveInput contains the parameters for listing archived tasks.
type ListArchiveInput struct {
	Limit int // <= 0 = all
}

// ListArchive lists tasks from the long-term archive.
type ListArchive struct {
	archive domain.TaskArchive
}

// NewListArchive creates a new ListArchive use case.
func NewListArchive(archive domain.TaskArchive) *ListArchive {
	return &ListArchive{archive: archive}
}

// Execute returns archived tasks, most recent first.
func (uc *ListArchive) Execute(ctx context.Context, in ListArchiveInput) ([]domain.ArchivedTask, error) {
	tasks, err := uc.archive.List(ctx, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return tasks, nil
}
