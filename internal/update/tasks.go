package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/projection"
)

const taskFormFieldCount = 5

func newTaskForm(options []projection.Option) taskForm {
	title := textinput.New()
	title.CharLimit = 120
	title.Focus()

	description := textarea.New()
	description.SetHeight(4)

	dueDate := textinput.New()
	dueDate.Placeholder = "YYYY-MM-DD"
	dueDate.CharLimit = 10

	return taskForm{
		title:       title,
		description: description,
		dueDate:     dueDate,
		status:      model.TaskStatusPending,
		options:     options,
	}
}

// openTaskCreate resets the editor to defaults: status PENDING, no project,
// no due date.
func (m Model) openTaskCreate() Model {
	m.taskEdit = newTaskForm(projection.ProjectOptions(m.Store.Projects()))
	m.modal = modalTaskForm
	m.formErr = ""
	return m
}

// openTaskEdit repopulates every field from the cached task looked up by id.
// The cursor position is never trusted as an identity: filtering and sorting
// reorder the visible list.
func (m Model) openTaskEdit(id int64) Model {
	task, ok := m.Store.TaskByID(id)
	if !ok {
		m.Status = StatusBar{Text: "task not found in cache", IsError: true}
		return m
	}
	form := newTaskForm(projection.ProjectOptions(m.Store.Projects()))
	form.id = task.ID
	form.title.SetValue(task.Title)
	form.description.SetValue(task.Description)
	form.dueDate.SetValue(task.DueDate)
	form.status = task.Status
	for i, opt := range form.options {
		if opt.ID == task.ProjectID() {
			form.project = i + 1
			break
		}
	}
	m.taskEdit = form
	m.modal = modalTaskForm
	m.formErr = ""
	return m
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.formErr = ""
		return m, nil
	case "tab":
		m.taskEdit.setFocus((m.taskEdit.focus + 1) % taskFormFieldCount)
		return m, nil
	case "shift+tab":
		m.taskEdit.setFocus((m.taskEdit.focus + taskFormFieldCount - 1) % taskFormFieldCount)
		return m, nil
	case "enter":
		// Enter inside the description textarea inserts a newline.
		if m.taskEdit.focus != 1 {
			return m.submitTaskForm()
		}
	}

	switch m.taskEdit.focus {
	case 0:
		var cmd tea.Cmd
		m.taskEdit.title, cmd = m.taskEdit.title.Update(msg)
		return m, cmd
	case 1:
		var cmd tea.Cmd
		m.taskEdit.description, cmd = m.taskEdit.description.Update(msg)
		return m, cmd
	case 2:
		var cmd tea.Cmd
		m.taskEdit.dueDate, cmd = m.taskEdit.dueDate.Update(msg)
		return m, cmd
	case 3:
		switch msg.String() {
		case "left", "h":
			m.taskEdit.status = prevTaskStatus(m.taskEdit.status)
		case "right", "l", " ":
			m.taskEdit.status = nextTaskStatus(m.taskEdit.status)
		}
	case 4:
		switch msg.String() {
		case "left", "h":
			if m.taskEdit.project > 0 {
				m.taskEdit.project--
			}
		case "right", "l", " ":
			if m.taskEdit.project < len(m.taskEdit.options) {
				m.taskEdit.project++
			}
		}
	}
	return m, nil
}

// submitTaskForm validates locally before any network call. A validation
// failure keeps the modal open and issues nothing.
func (m Model) submitTaskForm() (Model, tea.Cmd) {
	form := m.taskEdit

	title := strings.TrimSpace(form.title.Value())
	if title == "" {
		m.formErr = "task title is required"
		return m, nil
	}

	dueDate := strings.TrimSpace(form.dueDate.Value())
	if dueDate != "" {
		if _, err := time.Parse(model.DueDateLayout, dueDate); err != nil {
			m.formErr = "due date must be YYYY-MM-DD"
			return m, nil
		}
	}

	var ref *model.ProjectRef
	if form.project > 0 {
		ref = &model.ProjectRef{ID: form.options[form.project-1].ID}
	}
	if m.cfg.RequireTaskProject && ref == nil {
		m.formErr = "a project is required"
		return m, nil
	}

	task := model.Task{
		ID:          form.id,
		Title:       title,
		Description: form.description.Value(),
		Status:      form.status,
		DueDate:     dueDate,
		Project:     ref,
	}
	m.formErr = ""
	m.Status = StatusBar{Text: "saving task..."}
	return m, m.saveTaskCmd(task)
}

func (f *taskForm) setFocus(focus int) {
	f.focus = focus
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	switch focus {
	case 0:
		f.title.Focus()
	case 1:
		f.description.Focus()
	case 2:
		f.dueDate.Focus()
	}
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.visibleTasks()
	switch msg.String() {
	case "j", "down":
		m.taskCursor = clampCursor(m.taskCursor+1, len(visible))
	case "k", "up":
		m.taskCursor = clampCursor(m.taskCursor-1, len(visible))
	case "a":
		return m.openTaskCreate(), nil
	case "e", "enter":
		if task, ok := m.selectedTask(); ok {
			return m.openTaskEdit(task.ID), nil
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			m.confirm = confirmTarget{
				Resource: resourceTasks,
				ID:       task.ID,
				Prompt:   "Delete task \"" + task.Title + "\"?",
			}
			m.modal = modalConfirmDelete
		}
	case " ", "x":
		if task, ok := m.selectedTask(); ok {
			next := model.TaskStatusCompleted
			if task.Status == model.TaskStatusCompleted {
				next = model.TaskStatusPending
			}
			m.Status = StatusBar{Text: "updating task status..."}
			return m, m.toggleTaskCmd(task.ID, next)
		}
	case "p":
		m.Selection.ProjectID = nextProjectFilter(m.Store.Projects(), m.Selection.ProjectID)
		m.taskCursor = 0
	case "s":
		m.Selection.Status = nextStatusFilter(m.Selection.Status)
		m.taskCursor = 0
	case "o":
		if m.Selection.Sort == projection.SortByTitle {
			m.Selection.Sort = projection.SortByDueDate
		} else {
			m.Selection.Sort = projection.SortByTitle
		}
	}
	return m, nil
}

func nextTaskStatus(s model.TaskStatus) model.TaskStatus {
	switch s {
	case model.TaskStatusPending:
		return model.TaskStatusInProgress
	case model.TaskStatusInProgress:
		return model.TaskStatusCompleted
	default:
		return model.TaskStatusPending
	}
}

func prevTaskStatus(s model.TaskStatus) model.TaskStatus {
	switch s {
	case model.TaskStatusPending:
		return model.TaskStatusCompleted
	case model.TaskStatusCompleted:
		return model.TaskStatusInProgress
	default:
		return model.TaskStatusPending
	}
}

// nextStatusFilter cycles all -> PENDING -> IN_PROGRESS -> COMPLETED -> all.
func nextStatusFilter(s model.TaskStatus) model.TaskStatus {
	switch s {
	case "":
		return model.TaskStatusPending
	case model.TaskStatusPending:
		return model.TaskStatusInProgress
	case model.TaskStatusInProgress:
		return model.TaskStatusCompleted
	default:
		return ""
	}
}

// nextProjectFilter cycles "all projects" and each cached project in order.
func nextProjectFilter(projects []model.Project, current int64) int64 {
	if len(projects) == 0 {
		return 0
	}
	if current == 0 {
		return projects[0].ID
	}
	for i, p := range projects {
		if p.ID == current {
			if i+1 < len(projects) {
				return projects[i+1].ID
			}
			return 0
		}
	}
	return 0
}
