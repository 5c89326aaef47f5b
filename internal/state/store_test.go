package state

import (
	"testing"

	"github.com/taskdeck/taskdeck/internal/model"
)

func TestReplaceIsWholesale(t *testing.T) {
	s := NewStore()
	s.ReplaceTasks([]model.Task{
		{ID: 1, Title: "old", Status: model.TaskStatusPending},
		{ID: 2, Title: "stale", Status: model.TaskStatusCompleted},
	})

	s.ReplaceTasks([]model.Task{{ID: 3, Title: "fresh", Status: model.TaskStatusPending}})
	if len(s.Tasks()) != 1 || s.Tasks()[0].ID != 3 {
		t.Fatalf("expected only the fresh snapshot, got %+v", s.Tasks())
	}
	if _, ok := s.TaskByID(1); ok {
		t.Fatal("old task survived a wholesale replace")
	}
}

func TestLookupByID(t *testing.T) {
	s := NewStore()
	s.ReplaceProjects([]model.Project{
		{ID: 9, Name: "Beta", Status: model.ProjectStatusArchived},
		{ID: 7, Name: "Launch", Status: model.ProjectStatusActive},
	})

	p, ok := s.ProjectByID(7)
	if !ok || p.Name != "Launch" || p.Status != model.ProjectStatusActive {
		t.Fatalf("unexpected lookup result: %+v ok=%v", p, ok)
	}
	if _, ok := s.ProjectByID(42); ok {
		t.Fatal("expected miss for unknown id")
	}
}
