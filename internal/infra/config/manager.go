package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/daytrack/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// defaultTemplate is written by InitGlobalConfig.
const defaultTemplate = `# daytrack configuration

[log]
# debug, info, warn, error
level = "info"

[host]
# web: go back to the planner after closing the day
# desktop: request a shutdown of the host
mode = "web"

[summary]
# text, markdown, csv, json, yaml
format = "text"
# git_repo = "~/src/project"

# [google]
# credentials = "~/.config/daytrack/credentials.json"
# token = "~/.config/daytrack/google-token.json"
# calendar = "primary"
# day_start = "09:00"

# [projects.work]
# title = "Work"
#
# [projects.work.github]
# repo = "owner/name"
# filter_username = "your-login"
# search_issues_from_github = true
`

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/daytrack)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GetLocalConfigInfo returns information about the config file in the data directory.
func (m *Manager) GetLocalConfigInfo() domain.ConfigInfo {
	return getConfigInfo(filepath.Join(m.dataDir, domain.ConfigFileName))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// InitGlobalConfig creates a global config file with the default template.
func (m *Manager) InitGlobalConfig() error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)

	if err := os.MkdirAll(m.globalConfDir, 0700); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0600)
}

// getConfigInfo reads a config file and returns its info.
func getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}
