package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrNoProjectID       = errors.New("no projectId")
	ErrNoIssueID         = errors.New("no issueId")
	ErrNoTrackerConfig   = errors.New("no issue tracker configured for project")
	ErrIssueNotFound     = errors.New("issue not found")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrNotInitialized    = errors.New("daytrack not initialized (run 'daytrack init' first)")
	ErrAlreadyLinked     = errors.New("task already linked to an issue")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidFormat     = errors.New("invalid export format")
	ErrNoToken           = errors.New("no token stored")
	ErrExporterDisabled  = errors.New("time sheet export not configured")
	ErrNothingToExport   = errors.New("no time tracked for the day")
	ErrConfigExists      = errors.New("config file already exists")
	ErrShutdownRequested = errors.New("host shutdown requested")
)
