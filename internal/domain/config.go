package domain

import (
	"path/filepath"
	"sort"
)

// Configuration paths.
const (
	AppDirName       = "daytrack"
	ConfigFileName   = "config.toml"
	TasksFileName    = "tasks.json"
	ArchiveFileName  = "archive.db"
	LogFileName      = "daytrack.log"
	DefaultDayStart  = "09:00"
	DefaultCalendar  = "primary"
	GithubTokenScope = "github"
)

// HostMode selects what happens after the day is closed.
type HostMode string

// Host modes.
const (
	HostWeb     HostMode = "web"     // Navigate back to the planner
	HostDesktop HostMode = "desktop" // Request a shutdown of the host
)

// IsDesktop returns true if the app runs in a desktop host.
func (m HostMode) IsDesktop() bool {
	return m == HostDesktop
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Projects map[string]ProjectConfig `toml:"projects"`
	Warnings []string                 `toml:"-"`
	Google   GoogleConfig             `toml:"google"`
	Log      LogConfig                `toml:"log"`
	Summary  SummaryConfig            `toml:"summary"`
	Host     HostConfig               `toml:"host"`
}

// ProjectConfig holds a [projects.<id>] section.
type ProjectConfig struct {
	Github *GithubConfig `toml:"github,omitempty"`
	Title  string        `toml:"title,omitempty"`
}

// GoogleConfig holds the time sheet export settings from [google].
type GoogleConfig struct {
	Calendar        string `toml:"calendar,omitempty"`    // Calendar ID (default: primary)
	CredentialsFile string `toml:"credentials,omitempty"` // OAuth client credentials.json
	TokenFile       string `toml:"token,omitempty"`       // Cached OAuth token
	DayStart        string `toml:"day_start,omitempty"`   // First entry start, HH:MM
}

// Enabled returns true if the export can authenticate.
func (g GoogleConfig) Enabled() bool {
	return g.CredentialsFile != ""
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// SummaryConfig holds day summary settings from [summary].
type SummaryConfig struct {
	Format  string `toml:"format,omitempty"`   // Default export format
	GitRepo string `toml:"git_repo,omitempty"` // Working copy whose commits are listed
}

// HostConfig holds settings from [host].
type HostConfig struct {
	Mode HostMode `toml:"mode,omitempty"`
}

// NewDefaultConfig returns a config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Projects: make(map[string]ProjectConfig),
		Log:      LogConfig{Level: "info"},
		Summary:  SummaryConfig{Format: "text"},
		Host:     HostConfig{Mode: HostWeb},
		Google:   GoogleConfig{Calendar: DefaultCalendar, DayStart: DefaultDayStart},
	}
}

// ProjectIDs returns the configured project IDs in sorted order.
func (c *Config) ProjectIDs() []string {
	ids := make([]string, 0, len(c.Projects))
	for id := range c.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Project converts a [projects.<id>] section into a Project.
// Returns nil if the project is not configured.
func (c *Config) Project(id string) *Project {
	pc, ok := c.Projects[id]
	if !ok {
		return nil
	}
	title := pc.Title
	if title == "" {
		title = id
	}
	return &Project{ID: id, Title: title, Github: pc.Github}
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// DataDir returns the data directory under dataHome.
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// TasksStorePath returns the path to the active task store.
func TasksStorePath(dataDir string) string {
	return filepath.Join(dataDir, TasksFileName)
}

// ArchivePath returns the path to the archive database.
func ArchivePath(dataDir string) string {
	return filepath.Join(dataDir, ArchiveFileName)
}

// LogPath returns the path to the log file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}
