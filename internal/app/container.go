// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/infra/archive"
	"github.com/runoshun/daytrack/internal/infra/config"
	"github.com/runoshun/daytrack/internal/infra/gcal"
	"github.com/runoshun/daytrack/internal/infra/github"
	"github.com/runoshun/daytrack/internal/infra/gitlog"
	"github.com/runoshun/daytrack/internal/infra/jsonstore"
	"github.com/runoshun/daytrack/internal/infra/keychain"
	"github.com/runoshun/daytrack/internal/infra/logging"
	"github.com/runoshun/daytrack/internal/infra/watcher"
	"github.com/runoshun/daytrack/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	DataDir     string // Data directory (e.g., ~/.local/share/daytrack)
	StorePath   string // Path to tasks.json
	ArchivePath string // Path to archive.db
	LogPath     string // Path to daytrack.log
}

// NewConfig derives all paths from the data directory.
func NewConfig(dataDir string) Config {
	return Config{
		DataDir:     dataDir,
		StorePath:   domain.TasksStorePath(dataDir),
		ArchivePath: domain.ArchivePath(dataDir),
		LogPath:     domain.LogPath(dataDir),
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/daytrack, falling back to ~/.local/share/daytrack.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome), nil
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Archive          domain.TaskArchive
	Projects         domain.ProjectStore
	Issues           domain.IssueAPI
	Commits          domain.CommitLog          // nil when [summary] git_repo is unset
	TimeSheet        domain.TimeSheetExporter  // nil when [google] is unset
	CalendarAuth     domain.CalendarAuthorizer // nil when [google] is unset
	Tokens           domain.TokenStore
	Notifier         domain.Notifier
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the given data directory.
func New(dataDir string) (*Container, error) {
	cfg := NewConfig(dataDir)

	configLoader := config.NewLoader(cfg.DataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	fileLogger := logging.New(cfg.LogPath, logging.ParseLevel(appConfig.Log.Level))
	logger := fileLogger.Slog()

	archiveStore, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		_ = fileLogger.Close()
		return nil, err
	}

	store := jsonstore.New(cfg.StorePath)
	tokens := keychain.New(currentUser())

	c := &Container{
		Tasks:            store,
		StoreInitializer: store,
		Archive:          archiveStore,
		Projects:         config.NewProjectStore(configLoader),
		Issues:           github.NewClient(tokens),
		Tokens:           tokens,
		Notifier:         domain.NopNotifier{},
		Clock:            domain.RealClock{},
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(cfg.DataDir),
		Logger:           logger,
		AppConfig:        appConfig,
		closers:          []io.Closer{archiveStore, fileLogger},
		Config:           cfg,
	}
	if appConfig.Summary.GitRepo != "" {
		c.Commits = gitlog.New(expandHome(appConfig.Summary.GitRepo))
	}
	if appConfig.Google.Enabled() {
		c.TimeSheet = gcal.NewExporter(appConfig.Google)
		c.CalendarAuth = gcal.NewAuthorizer(appConfig.Google)
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, tasks domain.TaskRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Notifier:         domain.NopNotifier{},
		Clock:            clock,
		Logger:           logger,
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// Close releases the archive database and the log file.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// WatchStore watches the task store file and calls onChanged after it changed.
func (c *Container) WatchStore(onChanged func()) (domain.StoreWatcher, error) {
	return watcher.New(c.Config.StorePath, watcher.DefaultDebounce, onChanged)
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "default"
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer, c.ConfigManager)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Projects, c.Clock)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.NewTaskUseCase())
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Clock)
}

// TrackTimeUseCase returns a new TrackTime use case.
func (c *Container) TrackTimeUseCase() *usecase.TrackTime {
	return usecase.NewTrackTime(c.Tasks, c.Clock)
}

// LinkIssueUseCase returns a new LinkIssue use case.
func (c *Container) LinkIssueUseCase() *usecase.LinkIssue {
	return usecase.NewLinkIssue(c.Tasks, c.Projects)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks)
}

// GetFreshDataForIssueUseCase returns a new GetFreshDataForIssue use case.
func (c *Container) GetFreshDataForIssueUseCase() *usecase.GetFreshDataForIssue {
	return usecase.NewGetFreshDataForIssue(c.Projects, c.Issues, c.Notifier, c.categoryLogger("sync"))
}

// RefreshIssuesUseCase returns a new RefreshIssues use case.
func (c *Container) RefreshIssuesUseCase() *usecase.RefreshIssues {
	return usecase.NewRefreshIssues(c.Tasks, c.GetFreshDataForIssueUseCase(), c.Clock, c.categoryLogger("sync"))
}

// IssueLinkUseCase returns a new IssueLink use case.
func (c *Container) IssueLinkUseCase() *usecase.IssueLink {
	return usecase.NewIssueLink(c.Projects)
}

// SearchIssuesUseCase returns a new SearchIssues use case.
func (c *Container) SearchIssuesUseCase() *usecase.SearchIssues {
	return usecase.NewSearchIssues(c.Projects, c.Issues, c.categoryLogger("search"))
}

// AddTaskFromIssueUseCase returns a new AddTaskFromIssue use case.
func (c *Container) AddTaskFromIssueUseCase() *usecase.AddTaskFromIssue {
	return usecase.NewAddTaskFromIssue(c.Tasks, c.Projects, c.Issues, c.Clock)
}

// DaySummaryUseCase returns a new DaySummary use case.
func (c *Container) DaySummaryUseCase() *usecase.DaySummary {
	return usecase.NewDaySummary(c.Tasks, c.Commits, c.Clock, c.categoryLogger("day"))
}

// FinishDayUseCase returns a new FinishDay use case.
func (c *Container) FinishDayUseCase() *usecase.FinishDay {
	return usecase.NewFinishDay(c.Tasks, c.Archive, c.Clock, c.categoryLogger("day"))
}

// ListArchiveUseCase returns a new ListArchive use case.
func (c *Container) ListArchiveUseCase() *usecase.ListArchive {
	return usecase.NewListArchive(c.Archive)
}

// ExportSummaryUseCase returns a new ExportSummary use case writing to w.
func (c *Container) ExportSummaryUseCase(w io.Writer) *usecase.ExportSummary {
	return usecase.NewExportSummary(w)
}

// ExportTimeSheetUseCase returns a new ExportTimeSheet use case.
func (c *Container) ExportTimeSheetUseCase() *usecase.ExportTimeSheet {
	return usecase.NewExportTimeSheet(c.Tasks, c.TimeSheet, c.Clock)
}

func (c *Container) categoryLogger(category string) *slog.Logger {
	if c.Logger == nil {
		return nil
	}
	return c.Logger.With(logging.CategoryKey, category)
}
