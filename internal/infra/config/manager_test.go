package config

import (
	"path/filepath"
	"testing"

	"github.com/runoshun/daytrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetLocalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		dataDir := t.TempDir()
		writeConfig(t, dataDir, "[log]\nlevel = \"debug\"")

		info := NewManagerWithGlobalDir(dataDir, "").GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, "[log]\nlevel = \"debug\"", info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		dataDir := t.TempDir()

		info := NewManagerWithGlobalDir(dataDir, "").GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo_NoDir(t *testing.T) {
	info := NewManagerWithGlobalDir(t.TempDir(), "").GetGlobalConfigInfo()

	assert.Empty(t, info.Path)
	assert.False(t, info.Exists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "daytrack")
	m := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	require.NoError(t, m.InitGlobalConfig())

	info := m.GetGlobalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "[summary]")

	// The template must load without warnings
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.HostWeb, cfg.Host.Mode)

	// Second call fails
	assert.ErrorIs(t, m.InitGlobalConfig(), domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig_NoDir(t *testing.T) {
	err := NewManagerWithGlobalDir(t.TempDir(), "").InitGlobalConfig()

	assert.Error(t, err)
}
