package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/usecase"
	"github.com/spf13/cobra"
)

// writerNotifier prints notifications as lines to w.
type writerNotifier struct {
	w io.Writer
}

// Notify prints msg.
func (n writerNotifier) Notify(msg string) {
	_, _ = fmt.Fprintln(n.w, msg)
}

// newIssueCommand creates the issue command.
func newIssueCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Work with GitHub issues",
		Long: `Create tasks from GitHub issues and keep linked tasks in sync.

Projects configure their repository in [projects.<id>.github].`,
	}

	cmd.AddCommand(newIssueAddCommand(c))
	cmd.AddCommand(newIssueRefreshCommand(c))
	cmd.AddCommand(newIssueURLCommand(c))
	cmd.AddCommand(newIssueSearchCommand(c))

	return cmd
}

// newIssueAddCommand creates the issue add subcommand.
func newIssueAddCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "add <number>",
		Short: "Create a task from an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue number: %w", err)
			}

			uc := c.AddTaskFromIssueUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddTaskFromIssueInput{
				ProjectID: projectID,
				Number:    number,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project of the issue (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newIssueRefreshCommand creates the issue refresh subcommand.
func newIssueRefreshCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ProjectID string
		Verbose   bool
	}

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull new issue activity into linked tasks",
		Long: `Check every task linked to an issue for new comments.

A task is updated when the newest comment not written by the project's
filter_username is newer than the last activity the task has seen.
Updated tasks get the current issue title and are marked done when the
issue is closed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Notifier = writerNotifier{w: cmd.ErrOrStderr()}

			uc := c.RefreshIssuesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RefreshIssuesInput{
				ProjectID:      opts.ProjectID,
				NotifyNoUpdate: opts.Verbose,
			})
			if err != nil {
				return err
			}

			ids := make([]int, 0, len(out.Errors))
			for id := range out.Errors {
				ids = append(ids, id)
			}
			slices.Sort(ids)
			for _, id := range ids {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "task #%d: %v\n", id, out.Errors[id])
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Checked %d linked tasks, %d updated\n", out.Checked, len(out.Updated))
			if len(out.Errors) > 0 {
				return fmt.Errorf("%d tasks failed to refresh", len(out.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectID, "project", "p", "", "Refresh only tasks of this project")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Also report issues without new activity")

	return cmd
}

// newIssueURLCommand creates the issue url subcommand.
func newIssueURLCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "url <number>",
		Short: "Print the web URL of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.IssueLinkUseCase()
			url, err := uc.Execute(cmd.Context(), usecase.IssueLinkInput{
				IssueID:   strings.TrimPrefix(args[0], "#"),
				ProjectID: projectID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project of the issue (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newIssueSearchCommand creates the issue search subcommand.
func newIssueSearchCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search the issues of a project",
		Long: `Search the GitHub issues of a project.

Requires search_issues_from_github = true in the project's github section.
Failed searches print no results.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.SearchIssuesUseCase()
			items := uc.Execute(cmd.Context(), usecase.SearchIssuesInput{
				Term:      strings.Join(args, " "),
				ProjectID: projectID,
			})

			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No issues found")
				return nil
			}
			printSearchResults(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project to search (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func printSearchResults(w io.Writer, items []domain.SearchResultItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "STATE\tTITLE\tURL")
	for _, item := range items {
		state, url := "-", "-"
		if item.Issue != nil {
			state = item.Issue.State
			url = item.Issue.HTMLURL
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", state, item.Title, url)
	}
}
