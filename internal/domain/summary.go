package domain

import "time"

// DaySummary is the end-of-day overview.
// Fields are ordered to minimize memory padding.
type DaySummary struct {
	Date           time.Time
	TodaysTasks    []*Task
	DoneTasks      []*Task
	CommitLog      []string
	Day            string
	TomorrowsNote  string
	TotalTimeSpent time.Duration // Over all days, tasks of today only
	WorkingToday   time.Duration // Recorded for Day only
}

// TimeSheetRow is a single time sheet entry.
type TimeSheetRow struct {
	Start    time.Time
	Title    string
	Duration time.Duration
	TaskID   int
}

// NewTimeSheetRows lays out the tasks worked on day back to back, starting at start.
// Tasks without time on day are skipped.
func NewTimeSheetRows(tasks []*Task, day string, start time.Time) []TimeSheetRow {
	rows := make([]TimeSheetRow, 0, len(tasks))
	cursor := start
	for _, t := range tasks {
		d := t.TimeSpentOn(day)
		if d <= 0 {
			continue
		}
		rows = append(rows, TimeSheetRow{
			TaskID:   t.ID,
			Title:    t.Title,
			Start:    cursor,
			Duration: d,
		})
		cursor = cursor.Add(d)
	}
	return rows
}
