package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/projection"
	"github.com/taskdeck/taskdeck/internal/state"
)

type View string

const (
	ViewDashboard View = "Dashboard"
	ViewTasks     View = "Tasks"
	ViewProjects  View = "Projects"
)

// Gateway is the remote store surface the update loop mutates through.
// Tests substitute a recording fake; production wires *api.Client.
type Gateway interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateProject(ctx context.Context, in model.Project) (model.Project, error)
	UpdateProject(ctx context.Context, in model.Project) (model.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, in model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) (model.Task, error)
	SetTaskStatus(ctx context.Context, id int64, status model.TaskStatus) error
	DeleteTask(ctx context.Context, id int64) error
}

type resource string

const (
	resourceProjects resource = "projects"
	resourceTasks    resource = "tasks"
)

type loadState int

const (
	loadPending loadState = iota
	loadReady
	loadFailed
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Tasks     string
	Projects  string
	Refresh   string
	Palette   string
	Help      string
	Quit      string
}

// modalKind tracks which editor, if any, is open. At most one modal is open
// at a time.
type modalKind int

const (
	modalNone modalKind = iota
	modalProjectForm
	modalTaskForm
	modalConfirmDelete
)

// projectForm is the project editor. A zero id routes submit to create;
// a non-zero id routes to update.
type projectForm struct {
	id     int64
	name   textinput.Model
	status model.ProjectStatus
	focus  int // 0 name, 1 status
}

// taskForm is the task editor. The project choice indexes the dropdown
// options: 0 means "no project", i>0 means options[i-1].
type taskForm struct {
	id          int64
	title       textinput.Model
	description textarea.Model
	dueDate     textinput.Model
	status      model.TaskStatus
	project     int
	options     []projection.Option
	focus       int // 0 title, 1 description, 2 due date, 3 status, 4 project
}

// confirmTarget is the pending destructive action awaiting a yes/no.
type confirmTarget struct {
	Resource resource
	ID       int64
	Prompt   string
}

type CommandPaletteState struct {
	Active bool
	Input  textinput.Model
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Notifier interface {
	Send(Notification) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }

type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}

type Model struct {
	CurrentView View
	Store       *state.Store
	Selection   projection.Selection
	Status      StatusBar
	Keys        GlobalKeyMap
	Palette     CommandPaletteState
	HelpVisible bool

	Notifications  []Notification
	DesktopEnabled bool
	notifier       Notifier

	gateway Gateway
	cfg     RuntimeConfig

	projectsLoad loadState
	projectsErr  string
	tasksLoad    loadState
	tasksErr     string

	taskCursor    int
	projectCursor int

	modal       modalKind
	projectEdit projectForm
	taskEdit    taskForm
	formErr     string
	confirm     confirmTarget

	spin        spinner.Model
	spinActive  bool
	Quitting    bool
}

// Messages. Completions arrive in network arrival order; there is no
// in-flight guard, matching the single-user interaction model.

type projectsLoadedMsg struct {
	Projects []model.Project
}

type tasksLoadedMsg struct {
	Tasks []model.Task
}

type refreshFailedMsg struct {
	Resource resource
	Err      error
}

type mutationKind int

const (
	mutSaveProject mutationKind = iota
	mutDeleteProject
	mutSaveTask
	mutDeleteTask
	mutToggleTask
)

type mutationDoneMsg struct {
	Kind mutationKind
}

type mutationFailedMsg struct {
	Kind mutationKind
	Err  error
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(gateway Gateway, cfg RuntimeConfig, notifier Notifier) Model {
	m := Model{
		CurrentView: ViewDashboard,
		Store:       state.NewStore(),
		Selection:   projection.Selection{Sort: projection.SortByTitle},
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Tasks:     "2",
			Projects:  "3",
			Refresh:   "r",
			Palette:   "/",
			Help:      "?",
			Quit:      "q",
		},
		gateway:        gateway,
		cfg:            cfg,
		notifier:       NoopNotifier{},
		DesktopEnabled: cfg.DesktopNotifications,
		projectsLoad:   loadPending,
		tasksLoad:      loadPending,
		spin:           spinner.New(),
		spinActive:     true,
	}
	if notifier != nil {
		m.notifier = notifier
	}
	m.Palette.Input = textinput.New()
	m.Palette.Input.Prompt = "/"
	m.Palette.Input.CharLimit = 120
	return m
}

func (m *Model) notify(title, body, level string) {
	n := Notification{Title: title, Body: body, Level: level, At: time.Now()}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 20 {
		m.Notifications = m.Notifications[len(m.Notifications)-20:]
	}
	if m.DesktopEnabled {
		_ = m.notifier.Send(n)
	}
}

func levelFromError(isError bool) string {
	if isError {
		return "error"
	}
	return "info"
}

func (m Model) visibleTasks() []model.Task {
	return projection.VisibleTasks(m.Store.Tasks(), m.Selection)
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 || m.taskCursor < 0 || m.taskCursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.taskCursor], true
}

func (m Model) selectedProject() (model.Project, bool) {
	projects := m.Store.Projects()
	if len(projects) == 0 || m.projectCursor < 0 || m.projectCursor >= len(projects) {
		return model.Project{}, false
	}
	return projects[m.projectCursor], true
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
