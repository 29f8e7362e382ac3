package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/daytrack/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_ArchiveAndList(t *testing.T) {
	// Setup
	s := openTestStore(t)
	ctx := context.Background()
	day1 := time.Date(2026, 10, 13, 18, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	done := &domain.Task{ID: 1, Title: "Ship release", ProjectID: "work", IsDone: true, IssueID: "42"}
	done.AddTimeSpent("2026-10-13", time.Hour)

	// Execute
	require.NoError(t, s.Archive(ctx, []*domain.Task{done}, day1))
	require.NoError(t, s.Archive(ctx, []*domain.Task{{ID: 2, Title: "a"}, {ID: 3, Title: "b"}}, day2))

	// Assert
	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].Task.ID)
	assert.Equal(t, 2, all[1].Task.ID)
	assert.Equal(t, 1, all[2].Task.ID)

	got := all[2]
	assert.True(t, got.ArchivedAt.Equal(day1))
	assert.Equal(t, "Ship release", got.Task.Title)
	assert.Equal(t, "42", got.Task.IssueID)
	assert.Equal(t, time.Hour, got.Task.TimeSpentOn("2026-10-13"))

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_ListEmpty(t *testing.T) {
	s := openTestStore(t)

	got, err := s.List(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Archive(context.Background(), []*domain.Task{{ID: 5, Title: "kept"}}, time.Now()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Task.Title)
}

func TestStore_ArchiveCancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Archive(ctx, []*domain.Task{{ID: 1, Title: "x"}}, time.Now())

	assert.Error(t, err)
	got, listErr := s.List(context.Background(), 0)
	require.NoError(t, listErr)
	assert.Empty(t, got)
}
