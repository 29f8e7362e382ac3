// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/daytrack/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory (e.g., ~/.local/share/daytrack)
	globalConfDir string // Path to global config directory (e.g., ~/.config/daytrack)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (local + global).
// Local config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadLocal returns only the configuration stored next to the data.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{
		Projects: make(map[string]domain.ProjectConfig),
	}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = str(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "host":
			for k, v := range m {
				switch k {
				case "mode":
					res.Host.Mode = domain.HostMode(str(v))
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [host]: %s", k))
				}
			}
		case "summary":
			for k, v := range m {
				switch k {
				case "format":
					res.Summary.Format = str(v)
				case "git_repo":
					res.Summary.GitRepo = str(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [summary]: %s", k))
				}
			}
		case "google":
			for k, v := range m {
				switch k {
				case "calendar":
					res.Google.Calendar = str(v)
				case "credentials":
					res.Google.CredentialsFile = str(v)
				case "token":
					res.Google.TokenFile = str(v)
				case "day_start":
					res.Google.DayStart = str(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [google]: %s", k))
				}
			}
		case "projects":
			for id, v := range m {
				pm, ok := v.(map[string]any)
				if !ok {
					warnings = append(warnings, fmt.Sprintf("unknown key in [projects]: %s", id))
					continue
				}
				pc, w := parseProjectSection(id, pm)
				res.Projects[id] = pc
				warnings = append(warnings, w...)
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseProjectSection parses a [projects.<id>] table including its github sub-table.
func parseProjectSection(id string, raw map[string]any) (domain.ProjectConfig, []string) {
	var pc domain.ProjectConfig
	var warnings []string

	for k, v := range raw {
		switch k {
		case "title":
			pc.Title = str(v)
		case "github":
			gm, ok := v.(map[string]any)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("unknown key in [projects.%s]: %s", id, k))
				continue
			}
			gh := &domain.GithubConfig{}
			for gk, gv := range gm {
				switch gk {
				case "repo":
					gh.Repo = str(gv)
				case "filter_username":
					gh.FilterUsername = str(gv)
				case "search_issues_from_github":
					if b, ok := gv.(bool); ok {
						gh.IsSearchIssuesFromGithub = b
					}
				case "token":
					gh.Token = str(gv)
				case "api_base_url":
					gh.APIBaseURL = str(gv)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [projects.%s.github]: %s", id, gk))
				}
			}
			pc.Github = gh
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [projects.%s]: %s", id, k))
		}
	}
	return pc, warnings
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// mergeConfigs merges two configs, with override taking precedence.
// Projects are replaced as a whole section.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Projects: maps.Clone(base.Projects),
		Google:   base.Google,
		Log:      base.Log,
		Summary:  base.Summary,
		Host:     base.Host,
		Warnings: append(append([]string{}, base.Warnings...), override.Warnings...),
	}
	if result.Projects == nil {
		result.Projects = make(map[string]domain.ProjectConfig)
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Host.Mode != "" {
		result.Host.Mode = override.Host.Mode
	}
	if override.Summary.Format != "" {
		result.Summary.Format = override.Summary.Format
	}
	if override.Summary.GitRepo != "" {
		result.Summary.GitRepo = override.Summary.GitRepo
	}
	if override.Google.Calendar != "" {
		result.Google.Calendar = override.Google.Calendar
	}
	if override.Google.CredentialsFile != "" {
		result.Google.CredentialsFile = override.Google.CredentialsFile
	}
	if override.Google.TokenFile != "" {
		result.Google.TokenFile = override.Google.TokenFile
	}
	if override.Google.DayStart != "" {
		result.Google.DayStart = override.Google.DayStart
	}

	maps.Copy(result.Projects, override.Projects)
	return result
}
