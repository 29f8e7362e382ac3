package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/daytrack/internal/domain"
)

// ExportTimeSheetInput contains the parameters for the time sheet export.
type ExportTimeSheetInput struct {
	Day      time.Time // zero = today
	DayStart string    // HH:MM of the first entry, empty = 09:00
}

// ExportTimeSheetOutput contains the exported rows.
type ExportTimeSheetOutput struct {
	Rows []domain.TimeSheetRow
}

// ExportTimeSheet sends the time worked on a day to the time sheet exporter.
type ExportTimeSheet struct {
	tasks    domain.TaskRepository
	exporter domain.TimeSheetExporter
	clock    domain.Clock
}

// NewExportTimeSheet creates a new ExportTimeSheet use case. exporter may be nil
// when no export target is configured.
func NewExportTimeSheet(tasks domain.TaskRepository, exporter domain.TimeSheetExporter, clock domain.Clock) *ExportTimeSheet {
	return &ExportTimeSheet{tasks: tasks, exporter: exporter, clock: clock}
}

// Execute lays out the day's tasks back to back and exports them.
func (uc *ExportTimeSheet) Execute(ctx context.Context, in ExportTimeSheetInput) (*ExportTimeSheetOutput, error) {
	if uc.exporter == nil {
		return nil, domain.ErrExporterDisabled
	}
	date := in.Day
	if date.IsZero() {
		date = uc.clock.Now()
	}
	dayStart := in.DayStart
	if dayStart == "" {
		dayStart = domain.DefaultDayStart
	}
	at, err := time.Parse("15:04", dayStart)
	if err != nil {
		return nil, fmt.Errorf("parse day start %q: %w", dayStart, err)
	}
	start := domain.StartOfDay(date).Add(time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute)

	tasks, err := uc.tasks.List(domain.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	rows := domain.NewTimeSheetRows(tasks, domain.TodayStr(date), start)
	if len(rows) == 0 {
		return nil, domain.ErrNothingToExport
	}

	if err := uc.exporter.Export(ctx, rows); err != nil {
		return nil, fmt.Errorf("export time sheet: %w", err)
	}
	return &ExportTimeSheetOutput{Rows: rows}, nil
}
