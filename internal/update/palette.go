package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/commands"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/projection"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m, nil
	case "enter":
		input := m.Palette.Input.Value()
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m.runPaletteCommand(input)
	}
	var cmd tea.Cmd
	m.Palette.Input, cmd = m.Palette.Input.Update(msg)
	return m, cmd
}

func (m Model) runPaletteCommand(input string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var pending tea.Cmd
	result, err := commands.Execute(cmd, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			if m.cfg.RequireTaskProject {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: "a project is required, use the task form",
				}
			}
			pending = m.saveTaskCmd(model.Task{Title: args.Title, Status: model.TaskStatusPending})
			return commands.Result{Message: "adding task: " + args.Title}, nil
		},
		Filter: func(args commands.FilterArgs) (commands.Result, error) {
			return m.applyFilterCommand(args)
		},
		Sort: func(args commands.SortArgs) (commands.Result, error) {
			if args.Key == "due" {
				m.Selection.Sort = projection.SortByDueDate
			} else {
				m.Selection.Sort = projection.SortByTitle
			}
			return commands.Result{Message: "sorting by " + args.Key}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: result.Message}
	m.taskCursor = 0
	return m, pending
}

func (m *Model) applyFilterCommand(args commands.FilterArgs) (commands.Result, error) {
	value := strings.TrimSpace(args.Value)
	switch args.Field {
	case commands.FilterFieldStatus:
		if strings.EqualFold(value, "all") {
			m.Selection.Status = ""
			return commands.Result{Message: "showing all statuses"}, nil
		}
		status := model.TaskStatus(strings.ToUpper(strings.ReplaceAll(value, " ", "_")))
		if !status.IsValid() {
			return commands.Result{}, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: "unknown status: " + value,
			}
		}
		m.Selection.Status = status
		return commands.Result{Message: "filtering status " + string(status)}, nil
	case commands.FilterFieldProject:
		if strings.EqualFold(value, "all") {
			m.Selection.ProjectID = 0
			return commands.Result{Message: "showing all projects"}, nil
		}
		for _, p := range m.Store.Projects() {
			if strings.EqualFold(p.Name, value) {
				m.Selection.ProjectID = p.ID
				return commands.Result{Message: "filtering project " + p.Name}, nil
			}
		}
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: "unknown project: " + value,
		}
	default:
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: "unknown filter field",
		}
	}
}
