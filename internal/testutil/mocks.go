// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"slices"
	"time"

	"github.com/runoshun/daytrack/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     map[int]*domain.Task
	Notes     map[string]string
	SaveErr   error
	GetErr    error
	ListErr   error
	DeleteErr error
	NextIDN   int
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int]*domain.Task),
		Notes:   make(map[string]string),
		NextIDN: 1,
	}
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return task, nil
}

// List returns the tasks matching the filter ordered by ID.
func (m *MockTaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if filter.Matches(t) {
			tasks = append(tasks, t)
		}
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})
	return tasks, nil
}

// Save saves a task.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete removes a task by ID.
func (m *MockTaskRepository) Delete(id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	return nil
}

// NextID returns the next available task ID.
func (m *MockTaskRepository) NextID() (int, error) {
	id := m.NextIDN
	m.NextIDN++
	return id, nil
}

// GetNote returns the note for a day.
func (m *MockTaskRepository) GetNote(day string) (string, error) {
	return m.Notes[day], nil
}

// SaveNote stores the note for a day.
func (m *MockTaskRepository) SaveNote(day, note string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Notes[day] = note
	return nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
}

// Initialize marks the store as initialized.
func (m *MockStoreInitializer) Initialize() (bool, error) {
	if m.InitErr != nil {
		return false, m.InitErr
	}
	created := !m.Initialized
	m.Initialized = true
	return created, nil
}

// IsInitialized returns the configured value.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockTaskArchive is a test double for domain.TaskArchive.
type MockTaskArchive struct {
	ArchiveErr error
	Archived   []domain.ArchivedTask
}

// Archive records the tasks.
func (m *MockTaskArchive) Archive(_ context.Context, tasks []*domain.Task, at time.Time) error {
	if m.ArchiveErr != nil {
		return m.ArchiveErr
	}
	for _, t := range tasks {
		m.Archived = append(m.Archived, domain.ArchivedTask{Task: *t, ArchivedAt: at})
	}
	return nil
}

// List returns the recorded tasks, most recent first.
func (m *MockTaskArchive) List(_ context.Context, limit int) ([]domain.ArchivedTask, error) {
	out := slices.Clone(m.Archived)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MockProjectStore is a test double for domain.ProjectStore.
type MockProjectStore struct {
	Projects map[string]*domain.Project
	Err      error
	Calls    int
}

// NewMockProjectStore creates a MockProjectStore with an initialized map.
func NewMockProjectStore() *MockProjectStore {
	return &MockProjectStore{Projects: make(map[string]*domain.Project)}
}

// GetProject returns the configured project.
func (m *MockProjectStore) GetProject(id string) (*domain.Project, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Projects[id], nil
}

// ListProjects returns all projects ordered by ID.
func (m *MockProjectStore) ListProjects() ([]*domain.Project, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*domain.Project, 0, len(m.Projects))
	for _, p := range m.Projects {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *domain.Project) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

// GithubConfig returns the GitHub settings of the configured project.
func (m *MockProjectStore) GithubConfig(projectID string) (*domain.GithubConfig, error) {
	p, err := m.GetProject(projectID)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Github, nil
}

// MockIssueAPI is a test double for domain.IssueAPI.
// Fields are ordered to minimize memory padding.
type MockIssueAPI struct {
	Issues        map[int]*domain.Issue
	GetErr        error
	SearchErr     error
	SearchResults []*domain.Issue
	SearchTerms   []string
	GetCalls      int
}

// NewMockIssueAPI creates a MockIssueAPI with an initialized map.
func NewMockIssueAPI() *MockIssueAPI {
	return &MockIssueAPI{Issues: make(map[int]*domain.Issue)}
}

// GetByID returns the configured issue.
func (m *MockIssueAPI) GetByID(_ context.Context, number int, _ *domain.GithubConfig) (*domain.Issue, error) {
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	issue, ok := m.Issues[number]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	return issue, nil
}

// Search records the term and returns the configured results.
func (m *MockIssueAPI) Search(_ context.Context, term string, _ *domain.GithubConfig) ([]*domain.Issue, error) {
	m.SearchTerms = append(m.SearchTerms, term)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults, nil
}

// MockCommitLog is a test double for domain.CommitLog.
type MockCommitLog struct {
	Err     error
	Commits []string
}

// CommitsOn returns the configured commits.
func (m *MockCommitLog) CommitsOn(_ time.Time) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Commits, nil
}

// MockTimeSheetExporter is a test double for domain.TimeSheetExporter.
type MockTimeSheetExporter struct {
	Err  error
	Rows []domain.TimeSheetRow
}

// Export records the rows.
func (m *MockTimeSheetExporter) Export(_ context.Context, rows []domain.TimeSheetRow) error {
	if m.Err != nil {
		return m.Err
	}
	m.Rows = append(m.Rows, rows...)
	return nil
}

// MockTokenStore is a test double for domain.TokenStore.
type MockTokenStore struct {
	Tokens map[string]string
}

// NewMockTokenStore creates a MockTokenStore with an initialized map.
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{Tokens: make(map[string]string)}
}

// Get returns the stored token.
func (m *MockTokenStore) Get(service string) (string, error) {
	tok, ok := m.Tokens[service]
	if !ok {
		return "", domain.ErrNoToken
	}
	return tok, nil
}

// Set stores a token.
func (m *MockTokenStore) Set(service, token string) error {
	m.Tokens[service] = token
	return nil
}

// Delete removes a token.
func (m *MockTokenStore) Delete(service string) error {
	delete(m.Tokens, service)
	return nil
}

// MockNotifier records notifications.
type MockNotifier struct {
	Messages []string
}

// Notify records msg.
func (m *MockNotifier) Notify(msg string) {
	m.Messages = append(m.Messages, msg)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr error
	Global  domain.ConfigInfo
	Local   domain.ConfigInfo
	Inits   int
}

// GetLocalConfigInfo returns the configured local info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.Local
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.Global
}

// InitGlobalConfig marks the global config as existing.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.Inits++
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.Global.Exists {
		return domain.ErrConfigExists
	}
	m.Global.Exists = true
	return nil
}

// MockCalendarAuthorizer is a test double for domain.CalendarAuthorizer.
type MockCalendarAuthorizer struct {
	Err error
	URL string
}

// Authorize hands URL to openURL.
func (m *MockCalendarAuthorizer) Authorize(_ context.Context, openURL func(string)) error {
	openURL(m.URL)
	return m.Err
}
