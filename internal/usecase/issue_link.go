package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// IssueLinkInput contains the parameters for building an issue URL.
type IssueLinkInput struct {
	IssueID   string
	ProjectID string
}

// IssueLink builds the web URL of an issue from the project's tracker config.
type IssueLink struct {
	projects domain.ProjectStore
}

// NewIssueLink creates a new IssueLink use case.
func NewIssueLink(projects domain.ProjectStore) *IssueLink {
	return &IssueLink{projects: projects}
}

// Execute returns the canonical URL of the issue.
func (uc *IssueLink) Execute(_ context.Context, in IssueLinkInput) (string, error) {
	if in.IssueID == "" {
		return "", domain.ErrNoIssueID
	}
	cfg, err := uc.projects.GithubConfig(in.ProjectID)
	if err != nil {
		return "", fmt.Errorf("get github config: %w", err)
	}
	if cfg == nil {
		return "", fmt.Errorf("project %s: %w", in.ProjectID, domain.ErrNoTrackerConfig)
	}
	return cfg.IssueURL(in.IssueID), nil
}
