package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTaskStatus = errors.New("model: invalid task status")
	ErrInvalidDueDate    = errors.New("model: invalid due date")
)

// DueDateLayout is the calendar-date form tasks carry on the wire.
const DueDateLayout = "2006-01-02"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ProjectRef is the project object embedded in a task on the wire. Only the
// ID is authoritative; name and status are whatever the server chose to
// embed and are resolved against the project cache for display.
type ProjectRef struct {
	ID     int64         `json:"id"`
	Name   string        `json:"name,omitempty"`
	Status ProjectStatus `json:"status,omitempty"`
}

// Task mirrors the wire shape of the /tasks resource. DueDate is an ISO-8601
// calendar date or empty for "no due date". Project is nil for an unassigned
// task and serializes as an explicit null.
type Task struct {
	ID          int64       `json:"id,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      TaskStatus  `json:"status"`
	DueDate     string      `json:"dueDate,omitempty"`
	Project     *ProjectRef `json:"project"`
}

// ProjectID returns the referenced project id, or zero when unassigned.
func (t Task) ProjectID() int64 {
	if t.Project == nil {
		return 0
	}
	return t.Project.ID
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, t.Status)
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, t.DueDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDueDate, t.DueDate)
		}
	}
	if t.Project != nil && t.Project.ID <= 0 {
		return errors.New("model: task project reference requires an id")
	}
	return nil
}
