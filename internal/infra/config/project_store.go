package config

import (
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// Ensure ProjectStore implements domain.ProjectStore.
var _ domain.ProjectStore = (*ProjectStore)(nil)

// ProjectStore serves projects from the [projects] section.
// The configuration is loaded again on every call so edits apply without a restart.
type ProjectStore struct {
	loader domain.ConfigLoader
}

// NewProjectStore creates a ProjectStore backed by loader.
func NewProjectStore(loader domain.ConfigLoader) *ProjectStore {
	return &ProjectStore{loader: loader}
}

// GetProject returns the project. Returns nil if not found.
func (s *ProjectStore) GetProject(id string) (*domain.Project, error) {
	cfg, err := s.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg.Project(id), nil
}

// ListProjects returns all configured projects ordered by ID.
func (s *ProjectStore) ListProjects() ([]*domain.Project, error) {
	cfg, err := s.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	ids := cfg.ProjectIDs()
	projects := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		projects = append(projects, cfg.Project(id))
	}
	return projects, nil
}

// GithubConfig returns the GitHub settings of a project, or nil if none are configured.
func (s *ProjectStore) GithubConfig(projectID string) (*domain.GithubConfig, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrProjectNotFound)
	}
	return p.Github, nil
}
