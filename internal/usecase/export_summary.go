package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/daytrack/internal/domain"
)

// Export formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ExportFormats returns the supported summary formats.
func ExportFormats() []string {
	return []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON, FormatYAML}
}

// ExportSummaryInput contains the parameters for exporting the task summary.
type ExportSummaryInput struct {
	Summary    *domain.DaySummary
	Format     string
	OnlyDone   bool // Only list done tasks
	WithTotals bool // Append time totals (text and markdown only)
}

// summaryRow is a single exported task.
type summaryRow struct {
	Title     string `json:"title" yaml:"title"`
	Project   string `json:"project,omitempty" yaml:"project,omitempty"`
	TimeToday string `json:"timeToday" yaml:"timeToday"`
	TimeTotal string `json:"timeTotal" yaml:"timeTotal"`
	ID        int    `json:"id" yaml:"id"`
	Done      bool   `json:"done" yaml:"done"`
}

// ExportSummary renders the tasks of a day summary into w.
type ExportSummary struct {
	w io.Writer
}

// NewExportSummary creates a new ExportSummary use case writing to w.
func NewExportSummary(w io.Writer) *ExportSummary {
	return &ExportSummary{w: w}
}

// Execute writes the summary in the requested format.
func (uc *ExportSummary) Execute(_ context.Context, in ExportSummaryInput) error {
	if in.Summary == nil {
		return fmt.Errorf("export summary: %w", domain.ErrNothingToExport)
	}
	tasks := in.Summary.TodaysTasks
	if in.OnlyDone {
		tasks = in.Summary.DoneTasks
	}
	rows := make([]summaryRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, summaryRow{
			ID:        t.ID,
			Title:     t.Title,
			Project:   t.ProjectID,
			Done:      t.IsDone,
			TimeToday: FormatDuration(t.TimeSpentOn(in.Summary.Day)),
			TimeTotal: FormatDuration(t.TotalTimeSpent()),
		})
	}

	switch in.Format {
	case FormatText, "":
		return uc.writeText(in, rows, "", "")
	case FormatMarkdown:
		return uc.writeText(in, rows, "- [%s] ", "## ")
	case FormatCSV:
		return uc.writeCSV(rows)
	case FormatJSON:
		enc := json.NewEncoder(uc.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(uc.w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%q: %w", in.Format, domain.ErrInvalidFormat)
	}
}

// writeText writes one line per task. checkbox is a format with one %s for the
// done marker; empty means plain lines.
func (uc *ExportSummary) writeText(in ExportSummaryInput, rows []summaryRow, checkbox, heading string) error {
	var b strings.Builder
	if heading != "" {
		fmt.Fprintf(&b, "%s%s\n\n", heading, in.Summary.Day)
	}
	for _, r := range rows {
		if checkbox != "" {
			mark := " "
			if r.Done {
				mark = "x"
			}
			fmt.Fprintf(&b, checkbox, mark)
		}
		fmt.Fprintf(&b, "%s (%s)\n", r.Title, r.TimeToday)
	}
	if in.WithTotals {
		fmt.Fprintf(&b, "\nWorked today: %s\nTotal on these tasks: %s\n",
			FormatDuration(in.Summary.WorkingToday), FormatDuration(in.Summary.TotalTimeSpent))
	}
	_, err := io.WriteString(uc.w, b.String())
	return err
}

func (uc *ExportSummary) writeCSV(rows []summaryRow) error {
	cw := csv.NewWriter(uc.w)
	if err := cw.Write([]string{"id", "title", "project", "done", "time_today", "time_total"}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, r := range rows {
		record := []string{strconv.Itoa(r.ID), r.Title, r.Project, strconv.FormatBool(r.Done), r.TimeToday, r.TimeTotal}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatDuration renders d as "1h 05m", "25m" or "0m".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
