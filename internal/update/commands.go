package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/model"
)

// Network commands. Each issues exactly one request and reports the outcome
// as a message; refreshes after a successful mutation are triggered from the
// update loop so the validate -> request -> refresh -> close ordering holds.

func (m Model) refreshProjectsCmd() tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		projects, err := g.ListProjects(context.Background())
		if err != nil {
			return refreshFailedMsg{Resource: resourceProjects, Err: err}
		}
		return projectsLoadedMsg{Projects: projects}
	}
}

func (m Model) refreshTasksCmd() tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		tasks, err := g.ListTasks(context.Background())
		if err != nil {
			return refreshFailedMsg{Resource: resourceTasks, Err: err}
		}
		return tasksLoadedMsg{Tasks: tasks}
	}
}

func (m Model) saveProjectCmd(in model.Project) tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		var err error
		if in.ID == 0 {
			_, err = g.CreateProject(context.Background(), in)
		} else {
			_, err = g.UpdateProject(context.Background(), in)
		}
		if err != nil {
			return mutationFailedMsg{Kind: mutSaveProject, Err: err}
		}
		return mutationDoneMsg{Kind: mutSaveProject}
	}
}

func (m Model) deleteProjectCmd(id int64) tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		if err := g.DeleteProject(context.Background(), id); err != nil {
			return mutationFailedMsg{Kind: mutDeleteProject, Err: err}
		}
		return mutationDoneMsg{Kind: mutDeleteProject}
	}
}

func (m Model) saveTaskCmd(in model.Task) tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		var err error
		if in.ID == 0 {
			_, err = g.CreateTask(context.Background(), in)
		} else {
			_, err = g.UpdateTask(context.Background(), in)
		}
		if err != nil {
			return mutationFailedMsg{Kind: mutSaveTask, Err: err}
		}
		return mutationDoneMsg{Kind: mutSaveTask}
	}
}

func (m Model) deleteTaskCmd(id int64) tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		if err := g.DeleteTask(context.Background(), id); err != nil {
			return mutationFailedMsg{Kind: mutDeleteTask, Err: err}
		}
		return mutationDoneMsg{Kind: mutDeleteTask}
	}
}

func (m Model) toggleTaskCmd(id int64, status model.TaskStatus) tea.Cmd {
	g := m.gateway
	return func() tea.Msg {
		if err := g.SetTaskStatus(context.Background(), id, status); err != nil {
			return mutationFailedMsg{Kind: mutToggleTask, Err: err}
		}
		return mutationDoneMsg{Kind: mutToggleTask}
	}
}
