package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateProject(ctx context.Context, in Project) (Project, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	UpdateProject(ctx context.Context, in Project) error
	DeleteProject(ctx context.Context, id int64) error
	ListProjects(ctx context.Context) ([]Project, error)

	CreateTask(ctx context.Context, in Task) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	UpdateTaskStatus(ctx context.Context, id int64, status string) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)
}
