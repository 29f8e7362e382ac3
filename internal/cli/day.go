package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/usecase"
	"github.com/spf13/cobra"
)

// newDayCommand creates the day command.
func newDayCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Summarize and close the day",
		Long:  `Review the day, export it, and archive the finished tasks.`,
	}

	cmd.AddCommand(newDaySummaryCommand(c))
	cmd.AddCommand(newDayFinishCommand(c))
	cmd.AddCommand(newDayExportCommand(c))
	cmd.AddCommand(newDayTimeSheetCommand(c))
	cmd.AddCommand(newDayArchiveCommand(c))

	return cmd
}

// newDaySummaryCommand creates the day summary subcommand.
func newDaySummaryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Open the interactive day summary",
		Long: `Open the interactive day summary.

Keys:
  f  finish the day (archive done tasks)
  e  export the task summary
  t  export the time sheet
  n  write a note for tomorrow
  q  quit

With [host] mode = "desktop", finishing the day ends the program with
a shutdown request for the host.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// newDayFinishCommand creates the day finish subcommand.
func newDayFinishCommand(c *app.Container) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Archive all done tasks",
		Long: `Move all done tasks into the long-term archive and remove them
from the active task list. Open tasks carry over to tomorrow.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.FinishDayUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.FinishDayInput{TomorrowsNote: note})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Day finished: %d tasks archived\n", len(out.ArchivedIDs))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Note shown in tomorrow's summary")

	return cmd
}

// newDayExportCommand creates the day export subcommand.
func newDayExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format   string
		OnlyDone bool
		Totals   bool
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the task summary of today",
		Long: fmt.Sprintf(`Print the tasks of today with the time spent on them.

Formats: %s (default: [summary] format).`, strings.Join(usecase.ExportFormats(), ", ")),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := opts.Format
			if format == "" && c.AppConfig != nil {
				format = c.AppConfig.Summary.Format
			}

			summary, err := c.DaySummaryUseCase().Execute(cmd.Context(), usecase.DaySummaryInput{})
			if err != nil {
				return err
			}

			uc := c.ExportSummaryUseCase(cmd.OutOrStdout())
			return uc.Execute(cmd.Context(), usecase.ExportSummaryInput{
				Summary:    summary,
				Format:     format,
				OnlyDone:   opts.OnlyDone,
				WithTotals: opts.Totals,
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format")
	cmd.Flags().BoolVar(&opts.OnlyDone, "done", false, "Only list done tasks")
	cmd.Flags().BoolVar(&opts.Totals, "totals", false, "Append time totals (text and markdown)")

	return cmd
}

// newDayTimeSheetCommand creates the day timesheet subcommand.
func newDayTimeSheetCommand(c *app.Container) *cobra.Command {
	var dayStart string

	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Export today's time to Google Calendar",
		Long: `Create one calendar event per task worked on today, back to back
from the start of the day. Requires [google] credentials and a prior
'daytrack auth google'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dayStart == "" && c.AppConfig != nil {
				dayStart = c.AppConfig.Google.DayStart
			}

			uc := c.ExportTimeSheetUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTimeSheetInput{DayStart: dayStart})
			if err != nil {
				return err
			}

			printTimeSheet(cmd.OutOrStdout(), out.Rows)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries\n", len(out.Rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&dayStart, "day-start", "", "Start of the first entry as HH:MM")

	return cmd
}

func printTimeSheet(w io.Writer, rows []domain.TimeSheetRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "START\tDURATION\tTASK")
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t#%d %s\n",
			row.Start.Format("15:04"), usecase.FormatDuration(row.Duration), row.TaskID, row.Title)
	}
}

// newDayArchiveCommand creates the day archive subcommand.
func newDayArchiveCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List archived tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListArchiveUseCase()
			archived, err := uc.Execute(cmd.Context(), usecase.ListArchiveInput{Limit: limit})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			_, _ = fmt.Fprintln(tw, "ARCHIVED\tID\tPROJECT\tTOTAL\tTITLE")
			for _, a := range archived {
				projectStr := "-"
				if a.Task.ProjectID != "" {
					projectStr = a.Task.ProjectID
				}
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
					a.ArchivedAt.Format("2006-01-02 15:04"),
					a.Task.ID,
					projectStr,
					usecase.FormatDuration(a.Task.TotalTimeSpent()),
					a.Task.Title,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries (0 = all)")

	return cmd
}
