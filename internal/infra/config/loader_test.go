package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/daytrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0644))
}

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, dataDir, `
[log]
level = "debug"

[host]
mode = "desktop"

[projects.work]
title = "Work"

[projects.work.github]
repo = "acme/api"
filter_username = "me"
search_issues_from_github = true
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Host.Mode.IsDesktop())
	p := cfg.Project("work")
	require.NotNil(t, p)
	assert.Equal(t, "Work", p.Title)
	require.NotNil(t, p.Github)
	assert.Equal(t, "acme/api", p.Github.Repo)
	assert.Equal(t, "me", p.Github.FilterUsername)
	assert.True(t, p.Github.IsSearchIssuesFromGithub)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_MergeLocalOverridesGlobal(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[log]
level = "warn"

[summary]
format = "markdown"
git_repo = "/src/app"

[google]
credentials = "/creds.json"
calendar = "work"

[projects.home]
title = "Home"
`)
	writeConfig(t, dataDir, `
[summary]
format = "csv"

[projects.work]
title = "Work"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "csv", cfg.Summary.Format)
	assert.Equal(t, "/src/app", cfg.Summary.GitRepo)
	assert.Equal(t, "work", cfg.Google.Calendar)
	assert.Equal(t, domain.DefaultDayStart, cfg.Google.DayStart)
	assert.True(t, cfg.Google.Enabled())
	assert.Equal(t, []string{"home", "work"}, cfg.ProjectIDs())
}

func TestLoader_Load_NoConfigFiles(t *testing.T) {
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_NoGlobalDir(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[log]\nlevel = \"error\"\n")

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoader_Load_Warnings(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
stray = 1

[log]
level = "info"
colour = true

[tasks]
store = "json"

[projects.work]
owner = "me"

[projects.work.github]
repo = "acme/api"
labels = ["bug"]
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"unknown key in [log]: colour",
		"unknown key in [projects.work.github]: labels",
		"unknown key in [projects.work]: owner",
		"unknown section: stray",
		"unknown section: tasks",
	}, cfg.Warnings)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[log\nlevel = ")

	_, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	assert.Error(t, err)
}

func TestLoader_LoadGlobal_NotFound(t *testing.T) {
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).LoadGlobal()

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, cfg)
}

func TestProjectStore_ReadsFreshConfig(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[projects.work.github]\nrepo = \"acme/old\"\n")
	store := NewProjectStore(NewLoaderWithGlobalDir(dataDir, ""))

	gh, err := store.GithubConfig("work")
	require.NoError(t, err)
	require.NotNil(t, gh)
	assert.Equal(t, "acme/old", gh.Repo)

	// Execute: edit the file between calls
	writeConfig(t, dataDir, "[projects.work.github]\nrepo = \"acme/new\"\n")
	gh, err = store.GithubConfig("work")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "acme/new", gh.Repo)
}

func TestProjectStore_GithubConfig(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[projects.plain]\ntitle = \"Plain\"\n")
	store := NewProjectStore(NewLoaderWithGlobalDir(dataDir, ""))

	gh, err := store.GithubConfig("plain")
	require.NoError(t, err)
	assert.Nil(t, gh)

	_, err = store.GithubConfig("missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectStore_ListProjects(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[projects.b]\n[projects.a]\ntitle = \"Alpha\"\n")
	store := NewProjectStore(NewLoaderWithGlobalDir(dataDir, ""))

	projects, err := store.ListProjects()

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Alpha", projects[0].Title)
	assert.Equal(t, "b", projects[1].Title)
}

func TestProjectStore_LoadError(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "not toml [")
	store := NewProjectStore(NewLoaderWithGlobalDir(dataDir, ""))

	_, err := store.GetProject("x")

	assert.Error(t, err)
}
