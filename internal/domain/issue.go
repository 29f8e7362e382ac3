package domain

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// IssueStateClosed is the remote state of a finished issue.
const IssueStateClosed = "closed"

// DefaultTruncateWidth is the display width used for notification titles.
const DefaultTruncateWidth = 20

// Issue represents a GitHub issue with its comments.
// Fields are ordered to minimize memory padding.
type Issue struct {
	UpdatedAt time.Time      `json:"updated_at"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	State     string         `json:"state"`
	HTMLURL   string         `json:"html_url"`
	Comments  []IssueComment `json:"-"` // Fetched separately from the comments endpoint
	ID        int64          `json:"id"`
	Number    int            `json:"number"`
}

// IssueComment is a single comment on an issue.
type IssueComment struct {
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body"`
	User      IssueUser `json:"user"`
}

// IssueUser identifies the author of a comment.
type IssueUser struct {
	Login string `json:"login"`
}

// IsDone returns true if the issue is closed.
func (i *Issue) IsDone() bool {
	return i.State == IssueStateClosed
}

// SearchResultItem is a single hit of an issue search.
type SearchResultItem struct {
	Issue     *Issue
	Title     string
	IssueType string
}

// FreshIssueData is the outcome of a reconciliation that found remote changes.
type FreshIssueData struct {
	Issue       *Issue
	IssueTitle  string // Truncated title for notifications
	TaskChanges TaskChanges
}

// FormatIssueTitle returns the task title for an issue: "#<number> <title>".
func FormatIssueTitle(number int, title string) string {
	return fmt.Sprintf("#%d %s", number, title)
}

// FormatIssueTitleForNotification returns the truncated issue title.
func FormatIssueTitleForNotification(number int, title string) string {
	return Truncate(FormatIssueTitle(number, title), DefaultTruncateWidth)
}

// Truncate shortens s to at most width display cells, ending with "..." when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// AddTaskData maps an issue onto the fields of a newly linked task.
func AddTaskData(issue *Issue) TaskChanges {
	title := FormatIssueTitle(issue.Number, issue.Title)
	wasUpdated := false
	lastUpdated := issue.UpdatedAt.UnixMilli()
	done := issue.IsDone()
	return TaskChanges{
		Title:            &title,
		IsDone:           &done,
		IssueLastUpdated: &lastUpdated,
		IssueWasUpdated:  &wasUpdated,
	}
}
