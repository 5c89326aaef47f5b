// Package projection derives display-ready views from cached collections and
// the transient filter/sort selection. Everything here is pure: no network,
// no shared state, identical inputs yield identical outputs.
package projection

import (
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/internal/model"
)

type SortKey string

const (
	SortByTitle   SortKey = "title"
	SortByDueDate SortKey = "dueDate"
)

// Selection is the transient filter/sort state. Zero ProjectID means "all
// projects"; empty Status means "all statuses".
type Selection struct {
	ProjectID int64
	Status    model.TaskStatus
	Sort      SortKey
}

// VisibleTasks returns the tasks passing both active filters, stably sorted
// by the selected key. Title order is case-insensitive, with byte order
// breaking ties, so "apple" sorts before "Banana". Due-date sorting compares
// the ISO date strings, so a task without a due date (empty string) sorts
// before any dated task. The input slice is never mutated.
func VisibleTasks(tasks []model.Task, sel Selection) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if sel.ProjectID != 0 && t.ProjectID() != sel.ProjectID {
			continue
		}
		if sel.Status != "" && t.Status != sel.Status {
			continue
		}
		out = append(out, t)
	}
	if sel.Sort == SortByTitle {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := strings.ToLower(out[i].Title), strings.ToLower(out[j].Title)
			if a != b {
				return a < b
			}
			return out[i].Title < out[j].Title
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	}
	return out
}

// Summary holds the dashboard aggregates. They are computed over the full
// unfiltered task cache; the active filter never changes them.
type Summary struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
}

func Summarize(tasks []model.Task) Summary {
	var s Summary
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case model.TaskStatusPending:
			s.Pending++
		case model.TaskStatusInProgress:
			s.InProgress++
		case model.TaskStatusCompleted:
			s.Completed++
		}
	}
	return s
}

// StatusLabel maps any known status value (task or project) to its display
// label. Unknown values pass through unchanged rather than failing.
func StatusLabel(status string) string {
	switch status {
	case "PENDING":
		return "Pending"
	case "IN_PROGRESS":
		return "In Progress"
	case "COMPLETED":
		return "Completed"
	case "ACTIVE":
		return "Active"
	case "ARCHIVED":
		return "Archived"
	default:
		return status
	}
}

// Badge is the style classification rendered alongside a status label.
type Badge string

const (
	BadgeWarn  Badge = "warn"
	BadgeInfo  Badge = "info"
	BadgeOK    Badge = "ok"
	BadgeMuted Badge = "muted"
)

func StatusBadge(status string) Badge {
	switch status {
	case "PENDING":
		return BadgeWarn
	case "IN_PROGRESS":
		return BadgeInfo
	case "COMPLETED", "ACTIVE":
		return BadgeOK
	default:
		return BadgeMuted
	}
}

// Option is one entry of the project dropdown / filter selector.
type Option struct {
	ID    int64
	Label string
}

// ProjectOptions preserves the cache order of projects, matching the
// dropdowns rebuilt after every project refresh.
func ProjectOptions(projects []model.Project) []Option {
	out := make([]Option, 0, len(projects))
	for _, p := range projects {
		out = append(out, Option{ID: p.ID, Label: p.Name})
	}
	return out
}

// ResolveProjectName joins a task's project reference against the project
// cache. The id is canonical; an embedded name is only a fallback for a ref
// the cache does not know yet, and "-" marks an unassigned task.
func ResolveProjectName(projects []model.Project, t model.Task) string {
	if t.Project == nil {
		return "-"
	}
	for _, p := range projects {
		if p.ID == t.Project.ID {
			return p.Name
		}
	}
	if t.Project.Name != "" {
		return t.Project.Name
	}
	return "-"
}
