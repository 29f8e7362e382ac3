// Package usecase contains the application business logic.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/runoshun/daytrack/internal/domain"
)

// GetFreshDataForIssueInput contains the parameters for reconciling a task with its issue.
type GetFreshDataForIssueInput struct {
	Task           *domain.Task // Task linked to the issue
	NotifySuccess  bool         // Notify when the issue changed
	NotifyNoUpdate bool         // Notify when nothing changed
}

// GetFreshDataForIssue checks whether the remote issue of a task changed since the
// task last saw it and returns the changes to apply.
type GetFreshDataForIssue struct {
	projects domain.ProjectStore
	issues   domain.IssueAPI
	notifier domain.Notifier
	logger   *slog.Logger
}

// NewGetFreshDataForIssue creates a new GetFreshDataForIssue use case.
func NewGetFreshDataForIssue(projects domain.ProjectStore, issues domain.IssueAPI, notifier domain.Notifier, logger *slog.Logger) *GetFreshDataForIssue {
	if notifier == nil {
		notifier = domain.NopNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GetFreshDataForIssue{
		projects: projects,
		issues:   issues,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute returns nil when the remote side has no newer activity.
// Nothing is persisted; the caller applies the returned changes.
func (uc *GetFreshDataForIssue) Execute(ctx context.Context, in GetFreshDataForIssueInput) (*domain.FreshIssueData, error) {
	task := in.Task
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	if task.ProjectID == "" {
		return nil, domain.ErrNoProjectID
	}
	if task.IssueID == "" {
		return nil, domain.ErrNoIssueID
	}
	number, err := strconv.Atoi(task.IssueID)
	if err != nil {
		return nil, fmt.Errorf("parse issue id %q: %w", task.IssueID, err)
	}

	cfg, err := uc.projects.GithubConfig(task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get github config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("project %s: %w", task.ProjectID, domain.ErrNoTrackerConfig)
	}

	issue, err := uc.issues.GetByID(ctx, number, cfg)
	if err != nil {
		return nil, fmt.Errorf("get issue #%d: %w", number, err)
	}

	// The issue's own UpdatedAt is not part of the comparison; only comments count.
	updates := commentTimestamps(issue.Comments, cfg.FilterUsername)
	title := domain.FormatIssueTitleForNotification(issue.Number, issue.Title)

	if len(updates) == 0 || updates[len(updates)-1] <= task.IssueLastUpdated {
		uc.logger.Debug("issue unchanged", "task", task.ID, "issue", number)
		if in.NotifyNoUpdate {
			uc.notifier.Notify(fmt.Sprintf("GitHub: Issue %s already up to date", title))
		}
		return nil, nil
	}
	lastRemoteUpdate := updates[len(updates)-1]

	changes := domain.AddTaskData(issue)
	wasUpdated := true
	changes.IssueWasUpdated = &wasUpdated
	changes.IssueLastUpdated = &lastRemoteUpdate

	uc.logger.Info("issue updated", "task", task.ID, "issue", number, "lastRemoteUpdate", lastRemoteUpdate)
	if in.NotifySuccess {
		uc.notifier.Notify(fmt.Sprintf("GitHub: Updated data for %s", title))
	}

	return &domain.FreshIssueData{
		TaskChanges: changes,
		Issue:       issue,
		IssueTitle:  title,
	}, nil
}

// commentTimestamps returns the creation times of the comments in epoch milliseconds,
// sorted ascending. Comments by filterUsername are skipped when the filter is longer
// than one character.
func commentTimestamps(comments []domain.IssueComment, filterUsername string) []int64 {
	filter := strings.ToLower(filterUsername)
	updates := make([]int64, 0, len(comments))
	for _, c := range comments {
		if len(filter) > 1 && strings.ToLower(c.User.Login) == filter {
			continue
		}
		updates = append(updates, c.CreatedAt.UnixMilli())
	}
	slices.Sort(updates)
	return updates
}
