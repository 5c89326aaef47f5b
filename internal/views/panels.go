package views

import (
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/projection"
)

type ProjectCardData struct {
	ID       int64
	Name     string
	Status   string
	Selected bool
}

type DashboardPanelData struct {
	Loading   bool
	ErrorText string
	Summary   projection.Summary
	Projects  []ProjectCardData
}

// RenderDashboardPanel shows the aggregate cards and the status chart. When
// the last refresh failed the panel says so explicitly instead of presenting
// stale numbers as fresh.
func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	switch {
	case data.ErrorText != "":
		b.WriteString("error: " + data.ErrorText + "\n")
		b.WriteString("counts unavailable, press [r] to retry")
		return strings.TrimSpace(b.String())
	case data.Loading:
		b.WriteString("(loading...)")
		return strings.TrimSpace(b.String())
	}

	s := data.Summary
	b.WriteString(fmt.Sprintf("total: %d | pending: %d | in progress: %d | completed: %d\n", s.Total, s.Pending, s.InProgress, s.Completed))
	b.WriteString(RenderStatusChart(s))
	b.WriteString("\n\nprojects:\n")
	if len(data.Projects) == 0 {
		b.WriteString("(no projects yet, press [a] on the projects view)")
	}
	for _, p := range data.Projects {
		cursor := " "
		if p.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, StatusTag(p.Status), p.Name))
	}
	return strings.TrimSpace(b.String())
}

// RenderStatusChart is the chart widget: a bar per status driven only by the
// derived counts.
func RenderStatusChart(s projection.Summary) string {
	rows := []struct {
		label string
		count int
	}{
		{"Pending", s.Pending},
		{"In Progress", s.InProgress},
		{"Completed", s.Completed},
	}
	max := 0
	for _, row := range rows {
		if row.count > max {
			max = row.count
		}
	}

	var b strings.Builder
	for _, row := range rows {
		width := 0
		if max > 0 {
			width = row.count * 24 / max
		}
		if row.count > 0 && width == 0 {
			width = 1
		}
		b.WriteString(fmt.Sprintf("\n%-12s %s %d", row.label, strings.Repeat("█", width), row.count))
	}
	return b.String()
}

type TaskRowData struct {
	ID          int64
	Title       string
	Status      string
	DueDate     string
	ProjectName string
	Selected    bool
}

type TaskListPanelData struct {
	FilterLine string
	Loading    bool
	ErrorText  string
	Rows       []TaskRowData
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(data.FilterLine + "\n")
	b.WriteString("actions: [a]dd [e]dit [d]elete [space]toggle [p/s]filter [o]sort\n")
	switch {
	case data.ErrorText != "":
		b.WriteString("error: " + data.ErrorText + "\n")
		b.WriteString("press [r] to retry")
		return strings.TrimSpace(b.String())
	case data.Loading:
		b.WriteString("(loading...)")
		return strings.TrimSpace(b.String())
	case len(data.Rows) == 0:
		b.WriteString("(no tasks found)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		check := "[ ]"
		if row.Status == "COMPLETED" {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, check, StatusTag(row.Status), row.Title))
		if row.DueDate != "" {
			b.WriteString(" due:" + row.DueDate)
		}
		if row.ProjectName != "-" && row.ProjectName != "" {
			b.WriteString(" @" + row.ProjectName)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

type ProjectListPanelData struct {
	Loading   bool
	ErrorText string
	Rows      []ProjectCardData
}

func RenderProjectListPanel(data ProjectListPanelData) string {
	var b strings.Builder
	b.WriteString("projects:\n")
	b.WriteString("actions: [a]dd [e]dit [d]elete\n")
	switch {
	case data.ErrorText != "":
		b.WriteString("error: " + data.ErrorText + "\n")
		b.WriteString("press [r] to retry")
		return strings.TrimSpace(b.String())
	case data.Loading:
		b.WriteString("(loading...)")
		return strings.TrimSpace(b.String())
	case len(data.Rows) == 0:
		b.WriteString("(no projects yet)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, StatusTag(row.Status), row.Name))
	}
	return strings.TrimSpace(b.String())
}

type FormFieldData struct {
	Label   string
	Value   string
	Focused bool
}

type FormData struct {
	Title     string
	Fields    []FormFieldData
	ErrorText string
}

func RenderFormModal(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	b.WriteString("keys: [tab]field [enter]save [esc]cancel\n")
	for _, f := range data.Fields {
		marker := "  "
		if f.Focused {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, f.Label, f.Value))
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

func RenderConfirmDialog(prompt string) string {
	var b strings.Builder
	b.WriteString("confirm:\n")
	b.WriteString(prompt + "\n")
	b.WriteString("[y] yes  [n] cancel")
	return b.String()
}

type TaskMetadataData struct {
	SelectedID   int64
	Title        string
	Status       string
	DueDate      string
	ProjectName  string
	MarkdownView string
}

func RenderTaskMetadataPane(data TaskMetadataData) string {
	if data.SelectedID == 0 {
		return "metadata:\n(no selection)"
	}
	due := data.DueDate
	if due == "" {
		due = "-"
	}
	return fmt.Sprintf("metadata:\nid: %d\ntitle: %s\nstatus: %s\ndue: %s\nproject: %s\n\ndescription:\n%s",
		data.SelectedID,
		data.Title,
		StatusTag(data.Status),
		due,
		data.ProjectName,
		data.MarkdownView,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command: " + input
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}
