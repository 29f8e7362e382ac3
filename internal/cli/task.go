package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/usecase"
	"github.com/spf13/cobra"
)

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title     string
		ProjectID string
		Notes     string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task for today.

Examples:
  # Create a task
  daytrack new --title "Write release notes"

  # Create a task in a configured project
  daytrack new --title "Review PR" --project work`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.NewTaskInput{
				Title:     opts.Title,
				ProjectID: opts.ProjectID,
				Notes:     opts.Notes,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVarP(&opts.ProjectID, "project", "p", "", "Project ID")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Task notes")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newListCommand creates the list command for listing tasks.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ProjectID string
		Done      bool
		Open      bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display the active tasks.

Output format is tab-separated with columns:
  ID, PROJECT, STATUS, TODAY, TOTAL, TITLE

Tasks whose linked issue changed since the last refresh are marked with *.

Examples:
  # List all active tasks
  daytrack list

  # List open tasks of a project
  daytrack list --open --project work`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Done && opts.Open {
				return fmt.Errorf("cannot use --done and --open together")
			}

			input := usecase.ListTasksInput{ProjectID: opts.ProjectID}
			if opts.Done || opts.Open {
				isDone := opts.Done
				input.IsDone = &isDone
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), out.Tasks, domain.TodayStr(c.Clock.Now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectID, "project", "p", "", "Show only tasks of this project")
	cmd.Flags().BoolVar(&opts.Done, "done", false, "Show only done tasks")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Show only open tasks")

	return cmd
}

// printTaskList prints tasks in a tab-separated table.
func printTaskList(w io.Writer, tasks []*domain.Task, day string) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tPROJECT\tSTATUS\tTODAY\tTOTAL\tTITLE")

	// Rows
	for _, task := range tasks {
		projectStr := "-"
		if task.ProjectID != "" {
			projectStr = task.ProjectID
		}

		statusStr := "open"
		if task.IsDone {
			statusStr = "done"
		}

		title := task.Title
		if task.IssueWasUpdated {
			title = "* " + title
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			projectStr,
			statusStr,
			usecase.FormatDuration(task.TimeSpentOn(day)),
			usecase.FormatDuration(task.TotalTimeSpent()),
			title,
		)
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Long: `Mark a task as done. Done tasks are archived when the day is finished.

Examples:
  daytrack done 1
  daytrack done "#1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, c, args[0], false)
		},
	}
}

// newUndoCommand creates the undo command.
func newUndoCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Reopen a done task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, c, args[0], true)
		},
	}
}

func runComplete(cmd *cobra.Command, c *app.Container, arg string, undo bool) error {
	taskID, err := parseTaskID(arg)
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	uc := c.CompleteTaskUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{
		TaskID: taskID,
		Undo:   undo,
	})
	if err != nil {
		return err
	}

	verb := "Completed"
	if undo {
		verb = "Reopened"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s task #%d: %s\n", verb, out.Task.ID, out.Task.Title)
	return nil
}

// newTrackCommand creates the track command for recording worked time.
func newTrackCommand(c *app.Container) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "track <id> <duration>",
		Short: "Add worked time to a task",
		Long: `Add worked time to a task. The duration uses Go syntax (e.g. 45m, 1h30m).

Examples:
  # Add 45 minutes today
  daytrack track 1 45m

  # Add time to a past day
  daytrack track 1 2h --day 2026-10-13`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			d, err := time.ParseDuration(args[1])
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}

			uc := c.TrackTimeUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.TrackTimeInput{
				TaskID:   taskID,
				Duration: d,
				Day:      day,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tracked %s on task #%d (%s on %s)\n",
				usecase.FormatDuration(d), out.Task.ID, usecase.FormatDuration(out.OnDay), out.DayLabel)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day as YYYY-MM-DD (default: today)")

	return cmd
}

// newLinkCommand creates the link command for attaching an issue to a task.
func newLinkCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ProjectID string
		Force     bool
	}

	cmd := &cobra.Command{
		Use:   "link <id> <issue>",
		Short: "Link a task to a GitHub issue",
		Long: `Link a task to a GitHub issue of its project.

The issue data is pulled on the next 'daytrack issue refresh'.

Examples:
  daytrack link 1 42
  daytrack link 1 "#42" --project work --force`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			number, err := parseTaskID(args[1])
			if err != nil {
				return fmt.Errorf("invalid issue number: %w", err)
			}

			uc := c.LinkIssueUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.LinkIssueInput{
				TaskID:    taskID,
				Number:    number,
				ProjectID: opts.ProjectID,
				Force:     opts.Force,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Linked task #%d to issue #%s\n", out.Task.ID, out.Task.IssueID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectID, "project", "p", "", "Project of the issue (default: task's project)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Replace an existing link")

	return cmd
}

// newRmCommand creates the rm command for deleting tasks.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task from the active store. Deleted tasks are not archived.

Examples:
  # Delete task by ID
  daytrack rm 1

  # Delete task using # prefix
  daytrack rm "#1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.DeleteTaskUseCase()
			if err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", taskID)
			return nil
		},
	}
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create tasks from a YAML file",
		Long: `Create tasks from a YAML list. Use - to read from stdin.

File format:
  - title: Write release notes
    project: work
  - title: Book flights
    notes: before Friday

Entries without a project use --project.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				src = f
			}

			uc := c.ImportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportTasksInput{
				Source:    src,
				ProjectID: projectID,
			})
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(out.TaskIDs))
			for _, id := range out.TaskIDs {
				ids = append(ids, fmt.Sprintf("#%d", id))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks", len(out.TaskIDs))
			if len(ids) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), ": %s", strings.Join(ids, ", "))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Default project for entries without one")

	return cmd
}

// parseTaskID parses a task ID string to int.
func parseTaskID(s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(s, "#")
	var id int
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}
