// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"time"
)

// IssueTypeGithub marks a task linked to a GitHub issue.
const IssueTypeGithub = "GITHUB"

// Task represents a unit of work tracked by daytrack.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created          time.Time        `json:"created"`                    // Creation time
	DoneOn           time.Time        `json:"doneOn,omitzero"`            // When the task was marked done
	TimeSpentOnDay   map[string]int64 `json:"timeSpentOnDay,omitempty"`   // Day (YYYY-MM-DD) -> milliseconds
	ProjectID        string           `json:"projectId,omitempty"`        // Owning project (empty = inbox)
	Title            string           `json:"title"`                      // Title (required)
	Notes            string           `json:"notes,omitempty"`            // Free-form notes
	IssueID          string           `json:"issueId,omitempty"`          // Remote issue number (empty = not linked)
	IssueType        string           `json:"issueType,omitempty"`        // Remote tracker type, e.g. GITHUB
	IssueLastUpdated int64            `json:"issueLastUpdated,omitempty"` // Last known remote update, epoch ms (0 = unknown)
	ID               int              `json:"-"`                          // Task ID (stored as map key, not in value)
	IsDone           bool             `json:"isDone"`
	IssueWasUpdated  bool             `json:"issueWasUpdated,omitempty"` // Remote changed since the user last looked
}

// HasIssue returns true if the task is linked to a remote issue.
func (t *Task) HasIssue() bool {
	return t.IssueID != ""
}

// TimeSpentOn returns the time spent on the task for the given day.
func (t *Task) TimeSpentOn(day string) time.Duration {
	return time.Duration(t.TimeSpentOnDay[day]) * time.Millisecond
}

// TotalTimeSpent sums the time spent over all days.
func (t *Task) TotalTimeSpent() time.Duration {
	var total int64
	for _, ms := range t.TimeSpentOnDay {
		total += ms
	}
	return time.Duration(total) * time.Millisecond
}

// AddTimeSpent adds d to the bucket of the given day.
func (t *Task) AddTimeSpent(day string, d time.Duration) {
	if t.TimeSpentOnDay == nil {
		t.TimeSpentOnDay = make(map[string]int64)
	}
	t.TimeSpentOnDay[day] += d.Milliseconds()
}

// WorkedOn returns the days with recorded time, sorted ascending.
func (t *Task) WorkedOn() []string {
	days := make([]string, 0, len(t.TimeSpentOnDay))
	for day := range t.TimeSpentOnDay {
		days = append(days, day)
	}
	slices.Sort(days)
	return days
}

// TaskChanges is a partial update of a task. Nil fields are left untouched.
type TaskChanges struct {
	Title            *string
	IsDone           *bool
	IssueLastUpdated *int64
	IssueWasUpdated  *bool
}

// IsEmpty returns true if no field is set.
func (c TaskChanges) IsEmpty() bool {
	return c.Title == nil && c.IsDone == nil && c.IssueLastUpdated == nil && c.IssueWasUpdated == nil
}

// Apply writes the set fields into t.
// DoneOn is stamped with now when the task transitions to done and cleared when it is reopened.
func (c TaskChanges) Apply(t *Task, now time.Time) {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.IsDone != nil {
		if *c.IsDone && !t.IsDone {
			t.DoneOn = now
		}
		if !*c.IsDone {
			t.DoneOn = time.Time{}
		}
		t.IsDone = *c.IsDone
	}
	if c.IssueLastUpdated != nil {
		t.IssueLastUpdated = *c.IssueLastUpdated
	}
	if c.IssueWasUpdated != nil {
		t.IssueWasUpdated = *c.IssueWasUpdated
	}
}

// ArchivedTask is a task moved to the long-term archive.
type ArchivedTask struct {
	ArchivedAt time.Time
	Task       Task
}

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	IsDone    *bool  // nil = all tasks
	ProjectID string // empty = all projects
	OnlyIssue bool   // only tasks linked to an issue
}

// Matches reports whether t satisfies the filter.
func (f TaskFilter) Matches(t *Task) bool {
	if f.IsDone != nil && t.IsDone != *f.IsDone {
		return false
	}
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.OnlyIssue && !t.HasIssue() {
		return false
	}
	return true
}
