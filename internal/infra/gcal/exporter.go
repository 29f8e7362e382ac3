package gcal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/runoshun/daytrack/internal/domain"
)

// taskIDProperty is the private extended property holding the task ID of an event.
const taskIDProperty = "daytrack_task_id"

// Ensure Exporter implements domain.TimeSheetExporter.
var _ domain.TimeSheetExporter = (*Exporter)(nil)

// Exporter writes time sheet rows as calendar events.
type Exporter struct {
	auth       *Authorizer
	srv        *calendar.Service
	calendarID string
}

// NewExporter creates an Exporter that authorizes lazily on the first export.
func NewExporter(cfg domain.GoogleConfig) *Exporter {
	calendarID := cfg.Calendar
	if calendarID == "" {
		calendarID = domain.DefaultCalendar
	}
	return &Exporter{auth: NewAuthorizer(cfg), calendarID: calendarID}
}

// NewExporterWithService creates an Exporter using an existing calendar service.
func NewExporterWithService(srv *calendar.Service, calendarID string) *Exporter {
	return &Exporter{srv: srv, calendarID: calendarID}
}

func (e *Exporter) service(ctx context.Context) (*calendar.Service, error) {
	if e.srv != nil {
		return e.srv, nil
	}
	client, err := e.auth.Client(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gcal: create calendar service: %w", err)
	}
	e.srv = srv
	return srv, nil
}

// Export inserts one event per row. It stops at the first failed insert.
func (e *Exporter) Export(ctx context.Context, rows []domain.TimeSheetRow) error {
	srv, err := e.service(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := srv.Events.Insert(e.calendarID, toEvent(row)).Context(ctx).Do(); err != nil {
			return fmt.Errorf("gcal: insert event for task #%d: %w", row.TaskID, err)
		}
	}
	return nil
}

func toEvent(row domain.TimeSheetRow) *calendar.Event {
	return &calendar.Event{
		Summary: row.Title,
		Start:   &calendar.EventDateTime{DateTime: row.Start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: row.Start.Add(row.Duration).Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{taskIDProperty: strconv.Itoa(row.TaskID)},
		},
	}
}
