package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/daytrack/internal/domain"
)

// TrackTimeInput contains the parameters for recording worked time.
type TrackTimeInput struct {
	Day      string // empty = today
	Duration time.Duration
	TaskID   int
}

// TrackTimeOutput contains the updated task and its time for the day.
type TrackTimeOutput struct {
	Task     *domain.Task
	OnDay    time.Duration
	DayLabel string
}

// TrackTime adds worked time to a task.
type TrackTime struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewTrackTime creates a new TrackTime use case.
func NewTrackTime(tasks domain.TaskRepository, clock domain.Clock) *TrackTime {
	return &TrackTime{tasks: tasks, clock: clock}
}

// Execute adds the duration to the day's bucket.
func (uc *TrackTime) Execute(_ context.Context, in TrackTimeInput) (*TrackTimeOutput, error) {
	if in.Duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	day := in.Day
	if day == "" {
		day = domain.TodayStr(uc.clock.Now())
	}
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return nil, fmt.Errorf("parse day %q: %w", day, err)
	}

	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	task.AddTimeSpent(day, in.Duration)

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return &TrackTimeOutput{Task: task, OnDay: task.TimeSpentOn(day), DayLabel: day}, nil
}
