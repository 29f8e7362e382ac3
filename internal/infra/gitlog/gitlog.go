// Package gitlog reads the commits of a working copy with go-git.
package gitlog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/runoshun/daytrack/internal/domain"
)

// Ensure Log implements domain.CommitLog.
var _ domain.CommitLog = (*Log)(nil)

// Log lists the commits of the repository containing path.
type Log struct {
	path string
}

// New creates a Log for the repository at or above path.
func New(path string) *Log {
	return &Log{path: path}
}

// CommitsOn returns "<short-sha> <subject>" lines of the commits reachable from HEAD
// that were committed on day's calendar day, oldest first.
func (l *Log) CommitsOn(day time.Time) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(l.path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository %s: %w", l.path, err)
	}

	since := domain.StartOfDay(day)
	until := since.AddDate(0, 0, 1).Add(-time.Nanosecond)
	iter, err := repo.Log(&git.LogOptions{Since: &since, Until: &until})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return []string{}, nil // No commits yet
	}
	if err != nil {
		return nil, fmt.Errorf("read git log: %w", err)
	}
	defer iter.Close()

	lines := []string{}
	err = iter.ForEach(func(c *object.Commit) error {
		lines = append(lines, formatCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate git log: %w", err)
	}
	slices.Reverse(lines)
	return lines, nil
}

func formatCommit(c *object.Commit) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return c.Hash.String()[:7] + " " + subject
}
