package usecase

import (
	"context"
	"log/slog"

	"github.com/runoshun/daytrack/internal/domain"
)

// SearchIssuesInput contains the parameters for an issue search.
type SearchIssuesInput struct {
	Term      string
	ProjectID string
}

// SearchIssues searches the remote tracker of a project.
// Failures never reach the caller; they degrade to an empty result.
type SearchIssues struct {
	projects domain.ProjectStore
	issues   domain.IssueAPI
	logger   *slog.Logger
}

// NewSearchIssues creates a new SearchIssues use case.
func NewSearchIssues(projects domain.ProjectStore, issues domain.IssueAPI, logger *slog.Logger) *SearchIssues {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SearchIssues{projects: projects, issues: issues, logger: logger}
}

// Execute returns the matching issues, or an empty list when search is disabled or fails.
func (uc *SearchIssues) Execute(ctx context.Context, in SearchIssuesInput) []domain.SearchResultItem {
	cfg, err := uc.projects.GithubConfig(in.ProjectID)
	if err != nil {
		uc.logger.Debug("search: config unavailable", "project", in.ProjectID, "error", err)
		return []domain.SearchResultItem{}
	}
	if cfg == nil || !cfg.IsSearchIssuesFromGithub {
		return []domain.SearchResultItem{}
	}

	found, err := uc.issues.Search(ctx, in.Term, cfg)
	if err != nil {
		uc.logger.Debug("search failed", "project", in.ProjectID, "term", in.Term, "error", err)
		return []domain.SearchResultItem{}
	}

	items := make([]domain.SearchResultItem, 0, len(found))
	for _, issue := range found {
		items = append(items, domain.SearchResultItem{
			Title:     domain.FormatIssueTitle(issue.Number, issue.Title),
			IssueType: domain.IssueTypeGithub,
			Issue:     issue,
		})
	}
	return items
}
