package storage

// Project is the persisted row shape; enum validation lives above this layer.
type Project struct {
	ID     int64
	Name   string
	Status string
}

// Task row. ProjectID zero means no project; it is stored as NULL so the
// foreign-key cascade only binds assigned tasks.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	DueDate     string
	ProjectID   int64
}

// TaskListFilter narrows ListTasks. Zero values mean "no constraint".
type TaskListFilter struct {
	ProjectID int64
	Status    string
}
