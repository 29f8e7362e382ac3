package tui

import "github.com/runoshun/daytrack/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgSummaryLoaded is sent when the day summary is loaded.
type MsgSummaryLoaded struct {
	Summary *domain.DaySummary
}

func (MsgSummaryLoaded) sealed() {}

// MsgPlannerLoaded is sent when the remaining tasks are loaded for the planner view.
type MsgPlannerLoaded struct {
	Tasks []*domain.Task
}

func (MsgPlannerLoaded) sealed() {}

// MsgDayFinished is sent when the done tasks were archived.
type MsgDayFinished struct {
	ArchivedIDs []int
}

func (MsgDayFinished) sealed() {}

// MsgTimeSheetExported is sent when the time sheet was exported.
type MsgTimeSheetExported struct {
	Rows []domain.TimeSheetRow
}

func (MsgTimeSheetExported) sealed() {}

// MsgCompleteTimer fires when the short post-close delay elapsed.
type MsgCompleteTimer struct {
	ID int
}

func (MsgCompleteTimer) sealed() {}

// MsgAnimationTimer fires when the success animation should be hidden.
type MsgAnimationTimer struct {
	ID int
}

func (MsgAnimationTimer) sealed() {}

// MsgStoreChanged is sent by the file watcher when the task store changed on disk.
type MsgStoreChanged struct{}

func (MsgStoreChanged) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
