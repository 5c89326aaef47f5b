package server

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// The gateway client doubles as the test harness here: every round trip
// exercises both sides of the wire contract.
func setupServer(t *testing.T) *api.Client {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	srv := httptest.NewServer(NewHTTPServer(repo, nil).Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL + "/api")
}

func TestProjectLifecycle(t *testing.T) {
	client := setupServer(t)
	ctx := context.Background()

	created, err := client.CreateProject(ctx, model.Project{Name: "Launch"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if created.ID == 0 || created.Status != model.ProjectStatusActive {
		t.Fatalf("expected assigned id and ACTIVE default, got %+v", created)
	}

	created.Name = "Launch v2"
	created.Status = model.ProjectStatusArchived
	updated, err := client.UpdateProject(ctx, created)
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if updated.Name != "Launch v2" || updated.Status != model.ProjectStatusArchived {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	all, err := client.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Launch v2" {
		t.Fatalf("unexpected list: %+v", all)
	}

	if err := client.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := client.GetProject(ctx, created.ID); err == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestTaskLifecycleWithEmbeddedProject(t *testing.T) {
	client := setupServer(t)
	ctx := context.Background()

	project, err := client.CreateProject(ctx, model.Project{Name: "Launch", Status: model.ProjectStatusActive})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	created, err := client.CreateTask(ctx, model.Task{
		Title:   "Write spec",
		Status:  model.TaskStatusPending,
		DueDate: "2026-03-01",
		Project: &model.ProjectRef{ID: project.ID},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.Project == nil || created.Project.Name != "Launch" {
		t.Fatalf("expected embedded project record, got %+v", created.Project)
	}

	got, err := client.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.DueDate != "2026-03-01" || got.ProjectID() != project.ID {
		t.Fatalf("unexpected task: %+v", got)
	}

	got.Title = "Write spec v2"
	got.Project = nil
	updated, err := client.UpdateTask(ctx, got)
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Project != nil {
		t.Fatalf("expected project cleared, got %+v", updated.Project)
	}

	if err := client.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	tasks, err := client.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty task list, got %+v", tasks)
	}
}

func TestPatchUpdatesOnlyStatus(t *testing.T) {
	client := setupServer(t)
	ctx := context.Background()

	created, err := client.CreateTask(ctx, model.Task{
		Title:       "Toggle me",
		Description: "keep this",
		Status:      model.TaskStatusPending,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := client.SetTaskStatus(ctx, created.ID, model.TaskStatusCompleted); err != nil {
		t.Fatalf("patch status: %v", err)
	}

	got, err := client.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != model.TaskStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
	if got.Description != "keep this" || got.Title != "Toggle me" {
		t.Fatalf("patch touched other fields: %+v", got)
	}
}

func TestDeleteProjectCascadesOverHTTP(t *testing.T) {
	client := setupServer(t)
	ctx := context.Background()

	project, err := client.CreateProject(ctx, model.Project{Name: "Doomed"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := client.CreateTask(ctx, model.Task{Title: "inside", Status: model.TaskStatusPending, Project: &model.ProjectRef{ID: project.ID}}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	outside, err := client.CreateTask(ctx, model.Task{Title: "outside", Status: model.TaskStatusPending})
	if err != nil {
		t.Fatalf("create outside task: %v", err)
	}

	if err := client.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	tasks, err := client.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != outside.ID {
		t.Fatalf("expected cascade to leave only the outside task, got %+v", tasks)
	}
}

func TestValidationAndErrorStatuses(t *testing.T) {
	client := setupServer(t)
	ctx := context.Background()

	if _, err := client.CreateProject(ctx, model.Project{Name: "   "}); err == nil {
		t.Fatal("expected rejection for blank project name")
	}
	if _, err := client.CreateTask(ctx, model.Task{Title: "x", Status: model.TaskStatus("NOPE")}); err == nil {
		t.Fatal("expected rejection for invalid status")
	}
	if err := client.SetTaskStatus(ctx, 9999, model.TaskStatusCompleted); err == nil {
		t.Fatal("expected not found for missing task")
	}
}
