// Package cli provides the command-line interface for daytrack.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupIssue = "issue"
	groupDay   = "day"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for daytrack.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "daytrack",
		Short: "Task tracking and day summaries",
		Long: `daytrack tracks the tasks of your day, keeps tasks linked to
GitHub issues in sync, and closes the day with a summary.

Run without arguments to open the day summary.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "init" {
				return nil
			}

			// Skip if container is nil (e.g. in tests)
			if c == nil || c.ConfigLoader == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported again by the command that needs the config
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupIssue, Title: "Issue Tracking:"},
		&cobra.Group{ID: groupDay, Title: "Day Workflow:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	authCmd := newAuthCommand(c)
	authCmd.GroupID = groupSetup

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	undoCmd := newUndoCommand(c)
	undoCmd.GroupID = groupTask

	trackCmd := newTrackCommand(c)
	trackCmd.GroupID = groupTask

	linkCmd := newLinkCommand(c)
	linkCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	// Issue commands
	issueCmd := newIssueCommand(c)
	issueCmd.GroupID = groupIssue

	// Day workflow commands
	dayCmd := newDayCommand(c)
	dayCmd.GroupID = groupDay

	root.AddCommand(
		initCmd,
		configCmd,
		authCmd,
		newCmd,
		listCmd,
		doneCmd,
		undoCmd,
		trackCmd,
		linkCmd,
		rmCmd,
		importCmd,
		issueCmd,
		dayCmd,
	)

	return root
}

// launchTUI runs the day summary until the user quits.
// The summary reloads whenever the task store changes on disk.
func launchTUI(c *app.Container) error {
	if c == nil {
		return domain.ErrNotInitialized
	}

	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())

	w, err := c.WatchStore(func() { p.Send(tui.MsgStoreChanged{}) })
	if err != nil {
		c.Logger.Warn("watch task store", "error", err)
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer func() { _ = w.Close() }()
		go func() { _ = w.Run(ctx) }()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	if model.ShutdownRequested() {
		return domain.ErrShutdownRequested
	}
	return nil
}
