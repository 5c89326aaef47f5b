package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/model"
)

const projectFormFieldCount = 2

func newProjectForm() projectForm {
	name := textinput.New()
	name.CharLimit = 80
	name.Focus()
	return projectForm{
		name:   name,
		status: model.ProjectStatusActive,
	}
}

func (m Model) openProjectCreate() Model {
	m.projectEdit = newProjectForm()
	m.modal = modalProjectForm
	m.formErr = ""
	return m
}

// openProjectEdit repopulates the editor from the cached project looked up
// by id.
func (m Model) openProjectEdit(id int64) Model {
	project, ok := m.Store.ProjectByID(id)
	if !ok {
		m.Status = StatusBar{Text: "project not found in cache", IsError: true}
		return m
	}
	form := newProjectForm()
	form.id = project.ID
	form.name.SetValue(project.Name)
	form.status = project.Status
	m.projectEdit = form
	m.modal = modalProjectForm
	m.formErr = ""
	return m
}

func (m Model) handleProjectFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.formErr = ""
		return m, nil
	case "tab", "shift+tab":
		m.projectEdit.focus = (m.projectEdit.focus + 1) % projectFormFieldCount
		if m.projectEdit.focus == 0 {
			m.projectEdit.name.Focus()
		} else {
			m.projectEdit.name.Blur()
		}
		return m, nil
	case "enter":
		return m.submitProjectForm()
	}

	if m.projectEdit.focus == 0 {
		var cmd tea.Cmd
		m.projectEdit.name, cmd = m.projectEdit.name.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "left", "right", "h", "l", " ":
		if m.projectEdit.status == model.ProjectStatusActive {
			m.projectEdit.status = model.ProjectStatusArchived
		} else {
			m.projectEdit.status = model.ProjectStatusActive
		}
	}
	return m, nil
}

func (m Model) submitProjectForm() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.projectEdit.name.Value())
	if name == "" {
		m.formErr = "project name is required"
		return m, nil
	}
	status := m.projectEdit.status
	if status == "" {
		status = model.ProjectStatusActive
	}
	project := model.Project{ID: m.projectEdit.id, Name: name, Status: status}
	m.formErr = ""
	m.Status = StatusBar{Text: "saving project..."}
	return m, m.saveProjectCmd(project)
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	projects := m.Store.Projects()
	switch msg.String() {
	case "j", "down":
		m.projectCursor = clampCursor(m.projectCursor+1, len(projects))
	case "k", "up":
		m.projectCursor = clampCursor(m.projectCursor-1, len(projects))
	case "a":
		return m.openProjectCreate(), nil
	case "e", "enter":
		if project, ok := m.selectedProject(); ok {
			return m.openProjectEdit(project.ID), nil
		}
	case "d":
		if project, ok := m.selectedProject(); ok {
			m.confirm = confirmTarget{
				Resource: resourceProjects,
				ID:       project.ID,
				Prompt:   "Delete project \"" + project.Name + "\"? All of its tasks will be deleted too.",
			}
			m.modal = modalConfirmDelete
		}
	}
	return m, nil
}

// handleConfirmKey resolves the pending destructive action. Declining closes
// the dialog without issuing any network call.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		target := m.confirm
		m.modal = modalNone
		m.confirm = confirmTarget{}
		if target.Resource == resourceProjects {
			m.Status = StatusBar{Text: "deleting project..."}
			return m, m.deleteProjectCmd(target.ID)
		}
		m.Status = StatusBar{Text: "deleting task..."}
		return m, m.deleteTaskCmd(target.ID)
	case "n", "esc":
		m.modal = modalNone
		m.confirm = confirmTarget{}
		m.Status = StatusBar{Text: "delete cancelled"}
	}
	return m, nil
}
