package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/projection"
	"github.com/taskdeck/taskdeck/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.gateway == nil {
		return nil
	}
	return tea.Batch(m.refreshProjectsCmd(), m.refreshTasksCmd(), m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			next, cmd := m.handlePaletteKey(typed)
			return next, cmd
		}
		switch m.modal {
		case modalConfirmDelete:
			next, cmd := m.handleConfirmKey(typed)
			return next, cmd
		case modalProjectForm:
			next, cmd := m.handleProjectFormKey(typed)
			return next, cmd
		case modalTaskForm:
			next, cmd := m.handleTaskFormKey(typed)
			return next, cmd
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input.SetValue("")
			m.Palette.Input.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Dashboard:
			m.CurrentView = ViewDashboard
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Projects:
			m.CurrentView = ViewProjects
			return m, nil
		case m.Keys.Refresh:
			if m.gateway == nil {
				return m, nil
			}
			m.projectsLoad = loadPending
			m.tasksLoad = loadPending
			m.spinActive = true
			m.Status = StatusBar{Text: "refreshing..."}
			return m, tea.Batch(m.refreshProjectsCmd(), m.refreshTasksCmd(), m.spin.Tick)
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			next, cmd := m.handleTasksKey(typed)
			return next, cmd
		case ViewProjects, ViewDashboard:
			next, cmd := m.handleProjectsKey(typed)
			return next, cmd
		}

	case spinner.TickMsg:
		if m.spinActive {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(typed)
			return m, cmd
		}

	case projectsLoadedMsg:
		m.Store.ReplaceProjects(typed.Projects)
		m.projectsLoad = loadReady
		m.projectsErr = ""
		m.projectCursor = clampCursor(m.projectCursor, len(typed.Projects))
		if m.tasksLoad != loadPending {
			m.spinActive = false
		}
		return m, nil

	case tasksLoadedMsg:
		m.Store.ReplaceTasks(typed.Tasks)
		m.tasksLoad = loadReady
		m.tasksErr = ""
		m.taskCursor = clampCursor(m.taskCursor, len(m.visibleTasks()))
		if m.projectsLoad != loadPending {
			m.spinActive = false
		}
		return m, nil

	case refreshFailedMsg:
		// The cache keeps its previous snapshot; the affected views degrade
		// to an explicit error display instead.
		text := fmt.Sprintf("failed to refresh %s: %v", typed.Resource, typed.Err)
		if typed.Resource == resourceProjects {
			m.projectsLoad = loadFailed
			m.projectsErr = text
		} else {
			m.tasksLoad = loadFailed
			m.tasksErr = text
		}
		if m.projectsLoad != loadPending && m.tasksLoad != loadPending {
			m.spinActive = false
		}
		m.Status = StatusBar{Text: text, IsError: true}
		m.notify("Refresh failed", text, "error")
		return m, nil

	case mutationDoneMsg:
		return m.onMutationDone(typed)

	case mutationFailedMsg:
		// Cache untouched, modal left open so the user can retry manually.
		text := typed.Err.Error()
		m.Status = StatusBar{Text: text, IsError: true}
		m.notify("Request failed", text, "error")
		return m, nil

	case SwitchViewMsg:
		switch typed.View {
		case ViewDashboard, ViewTasks, ViewProjects:
			m.CurrentView = typed.View
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

// onMutationDone closes the editor and re-fetches the affected collections.
// Deleting a project cascades server-side, so both caches are refreshed.
func (m Model) onMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case mutSaveProject:
		m.modal = modalNone
		m.formErr = ""
		m.Status = StatusBar{Text: "project saved"}
		m.notify("Project", "project saved", "info")
		return m, m.refreshProjectsCmd()
	case mutDeleteProject:
		m.Status = StatusBar{Text: "project deleted"}
		m.notify("Project", "project deleted", "info")
		return m, tea.Batch(m.refreshProjectsCmd(), m.refreshTasksCmd())
	case mutSaveTask:
		m.modal = modalNone
		m.formErr = ""
		m.Status = StatusBar{Text: "task saved"}
		m.notify("Task", "task saved", "info")
		return m, m.refreshTasksCmd()
	case mutDeleteTask:
		m.Status = StatusBar{Text: "task deleted"}
		m.notify("Task", "task deleted", "info")
		return m, m.refreshTasksCmd()
	case mutToggleTask:
		m.Status = StatusBar{Text: "task status updated"}
		return m, m.refreshTasksCmd()
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderDashboardPane()
	case ViewTasks:
		leftPane = m.renderTasksPane()
	case ViewProjects:
		leftPane = m.renderProjectsPane()
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	notificationView := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notificationView = strings.TrimSpace(views.RenderNotification(last.Level, last.Body))
	}
	if m.spinActive {
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "refresh: " + m.spin.View() + " running"}, "\n"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskdeck | view: %s", m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    m.renderRightPane(),
		StatusLine:   status,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s dashboard | %s tasks | %s projects | %s refresh | %s cmd | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Tasks, m.Keys.Projects, m.Keys.Refresh, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderDashboardPane() string {
	data := views.DashboardPanelData{
		Loading: m.tasksLoad == loadPending || m.projectsLoad == loadPending,
		Summary: projection.Summarize(m.Store.Tasks()),
	}
	if m.tasksErr != "" {
		data.ErrorText = m.tasksErr
	} else if m.projectsErr != "" {
		data.ErrorText = m.projectsErr
	}
	for i, p := range m.Store.Projects() {
		data.Projects = append(data.Projects, views.ProjectCardData{
			ID:       p.ID,
			Name:     p.Name,
			Status:   string(p.Status),
			Selected: i == m.projectCursor && m.CurrentView == ViewDashboard,
		})
	}
	return views.RenderDashboardPanel(data)
}

func (m Model) renderTasksPane() string {
	data := views.TaskListPanelData{
		FilterLine: m.filterLine(),
		Loading:    m.tasksLoad == loadPending,
		ErrorText:  m.tasksErr,
	}
	for i, t := range m.visibleTasks() {
		data.Rows = append(data.Rows, views.TaskRowData{
			ID:          t.ID,
			Title:       t.Title,
			Status:      string(t.Status),
			DueDate:     t.DueDate,
			ProjectName: projection.ResolveProjectName(m.Store.Projects(), t),
			Selected:    i == m.taskCursor,
		})
	}
	return views.RenderTaskListPanel(data)
}

func (m Model) renderProjectsPane() string {
	data := views.ProjectListPanelData{
		Loading:   m.projectsLoad == loadPending,
		ErrorText: m.projectsErr,
	}
	for i, p := range m.Store.Projects() {
		data.Rows = append(data.Rows, views.ProjectCardData{
			ID:       p.ID,
			Name:     p.Name,
			Status:   string(p.Status),
			Selected: i == m.projectCursor,
		})
	}
	return views.RenderProjectListPanel(data)
}

func (m Model) renderRightPane() string {
	switch m.modal {
	case modalProjectForm:
		return views.RenderFormModal(m.projectFormData())
	case modalTaskForm:
		return views.RenderFormModal(m.taskFormData())
	case modalConfirmDelete:
		return views.RenderConfirmDialog(m.confirm.Prompt)
	}
	if m.Palette.Active {
		return views.RenderCommandPalette(true, m.Palette.Input.View()) + "\n\ncommands: add <title> | filter status <v> | filter project <name> | sort title|due"
	}
	if m.HelpVisible {
		return m.renderHelpPane()
	}
	if m.CurrentView == ViewTasks {
		return m.renderTaskMetadataPane()
	}
	return "press [?] for help"
}

func (m Model) renderTaskMetadataPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskMetadataPane(views.TaskMetadataData{})
	}
	return views.RenderTaskMetadataPane(views.TaskMetadataData{
		SelectedID:   task.ID,
		Title:        task.Title,
		Status:       string(task.Status),
		DueDate:      task.DueDate,
		ProjectName:  projection.ResolveProjectName(m.Store.Projects(), task),
		MarkdownView: views.RenderMarkdown(task.Description),
	})
}

func (m Model) renderHelpPane() string {
	return strings.Join([]string{
		"help:",
		"1/2/3: dashboard, tasks, projects",
		"j/k: move cursor",
		"a: add | e: edit | d: delete",
		"space: toggle task done",
		"p: cycle project filter | s: cycle status filter | o: sort",
		"r: refresh | /: command palette | q: quit",
	}, "\n")
}

func (m Model) filterLine() string {
	project := "all"
	if m.Selection.ProjectID != 0 {
		if p, ok := m.Store.ProjectByID(m.Selection.ProjectID); ok {
			project = p.Name
		} else {
			project = fmt.Sprintf("#%d", m.Selection.ProjectID)
		}
	}
	status := "all"
	if m.Selection.Status != "" {
		status = string(m.Selection.Status)
	}
	return fmt.Sprintf("filter: project=%s status=%s sort=%s", project, status, m.Selection.Sort)
}

func (m Model) projectFormData() views.FormData {
	title := "add project"
	if m.projectEdit.id != 0 {
		title = fmt.Sprintf("edit project #%d", m.projectEdit.id)
	}
	return views.FormData{
		Title: title,
		Fields: []views.FormFieldData{
			{Label: "name", Value: m.projectEdit.name.View(), Focused: m.projectEdit.focus == 0},
			{Label: "status", Value: "< " + string(m.projectEdit.status) + " >", Focused: m.projectEdit.focus == 1},
		},
		ErrorText: m.formErr,
	}
}

func (m Model) taskFormData() views.FormData {
	title := "add task"
	if m.taskEdit.id != 0 {
		title = fmt.Sprintf("edit task #%d", m.taskEdit.id)
	}
	project := "(none)"
	if m.taskEdit.project > 0 {
		project = m.taskEdit.options[m.taskEdit.project-1].Label
	}
	return views.FormData{
		Title: title,
		Fields: []views.FormFieldData{
			{Label: "title", Value: m.taskEdit.title.View(), Focused: m.taskEdit.focus == 0},
			{Label: "description", Value: m.taskEdit.description.View(), Focused: m.taskEdit.focus == 1},
			{Label: "due date", Value: m.taskEdit.dueDate.View(), Focused: m.taskEdit.focus == 2},
			{Label: "status", Value: "< " + string(m.taskEdit.status) + " >", Focused: m.taskEdit.focus == 3},
			{Label: "project", Value: "< " + project + " >", Focused: m.taskEdit.focus == 4},
		},
		ErrorText: m.formErr,
	}
}
