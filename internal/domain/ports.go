package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	// Returns true if the store was created by this call.
	Initialize() (bool, error)

	// IsInitialized checks if the store exists.
	IsInitialized() bool
}

// TaskRepository manages persistence of active tasks.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// List retrieves tasks matching the filter, ordered by ID.
	List(filter TaskFilter) ([]*Task, error)

	// Save creates or updates a task.
	Save(task *Task) error

	// Delete removes a task by ID.
	Delete(id int) error

	// NextID returns the next available task ID.
	NextID() (int, error)

	// GetNote returns the note stored for the given day.
	GetNote(day string) (string, error)

	// SaveNote stores a note for the given day.
	SaveNote(day, note string) error
}

// TaskArchive is the long-term store for finished tasks.
type TaskArchive interface {
	// Archive stores the given tasks with the archive time.
	Archive(ctx context.Context, tasks []*Task, at time.Time) error

	// List returns archived tasks, most recent first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]ArchivedTask, error)
}

// ProjectStore resolves projects and their tracker configuration.
// Implementations read fresh data on every call.
type ProjectStore interface {
	// GetProject returns the project. Returns nil if not found.
	GetProject(id string) (*Project, error)

	// ListProjects returns all configured projects ordered by ID.
	ListProjects() ([]*Project, error)

	// GithubConfig returns the GitHub settings of a project, or nil if none are configured.
	GithubConfig(projectID string) (*GithubConfig, error)
}

// IssueAPI is the remote issue tracker.
type IssueAPI interface {
	// GetByID fetches an issue with all of its comments.
	GetByID(ctx context.Context, number int, cfg *GithubConfig) (*Issue, error)

	// Search finds issues of the configured repository matching term.
	Search(ctx context.Context, term string, cfg *GithubConfig) ([]*Issue, error)
}

// CommitLog reads the commits of a working copy.
type CommitLog interface {
	// CommitsOn returns the one-line commit messages authored on the given day.
	CommitsOn(day time.Time) ([]string, error)
}

// TimeSheetExporter pushes worked time to an external calendar.
type TimeSheetExporter interface {
	// Export creates one entry per row.
	Export(ctx context.Context, rows []TimeSheetRow) error
}

// CalendarAuthorizer runs the interactive OAuth flow of the time sheet calendar.
type CalendarAuthorizer interface {
	// Authorize opens the consent page through openURL and caches the resulting token.
	Authorize(ctx context.Context, openURL func(url string)) error
}

// StoreWatcher reports changes of the task store on disk.
type StoreWatcher interface {
	// Run blocks until ctx is done or the watcher is closed.
	Run(ctx context.Context) error

	// Close stops watching.
	Close() error
}

// TokenStore keeps API tokens outside of config files.
type TokenStore interface {
	// Get returns the token of a service account. Returns ErrNoToken if absent.
	Get(service string) (string, error)

	// Set stores the token of a service account.
	Set(service, token string) error

	// Delete removes the token of a service account.
	Delete(service string) error
}

// Notifier shows short user-facing messages.
type Notifier interface {
	// Notify shows msg.
	Notify(msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (local + global).
	Load() (*Config, error)
}

// ConfigInfo holds information about a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetLocalConfigInfo returns information about the config file in the data directory.
	GetLocalConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the default config template to the global config file.
	InitGlobalConfig() error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NopNotifier discards all messages.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(string) {}
