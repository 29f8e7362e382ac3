package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// importedTask is one entry of a YAML task list.
type importedTask struct {
	Title   string `yaml:"title"`
	Project string `yaml:"project"`
	Notes   string `yaml:"notes"`
}

// ImportTasksInput contains the parameters for importing tasks.
type ImportTasksInput struct {
	Source    io.Reader
	ProjectID string // Default project for entries without one
}

// ImportTasksOutput contains the IDs of the created tasks.
type ImportTasksOutput struct {
	TaskIDs []int
}

// ImportTasks creates tasks from a YAML list such as:
//
//	- title: Write release notes
//	  project: work
//	- title: Book flights
type ImportTasks struct {
	newTask *NewTask
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(newTask *NewTask) *ImportTasks {
	return &ImportTasks{newTask: newTask}
}

// Execute decodes the whole list first and then creates the tasks in order.
// Creation stops at the first invalid entry; tasks created before it are kept.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	var entries []importedTask
	if err := yaml.NewDecoder(in.Source).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	out := &ImportTasksOutput{TaskIDs: make([]int, 0, len(entries))}
	for i, e := range entries {
		project := e.Project
		if project == "" {
			project = in.ProjectID
		}
		res, err := uc.newTask.Execute(ctx, NewTaskInput{Title: e.Title, ProjectID: project, Notes: e.Notes})
		if err != nil {
			return out, fmt.Errorf("entry %d: %w", i+1, err)
		}
		out.TaskIDs = append(out.TaskIDs, res.TaskID)
	}
	return out, nil
}
