package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTaskValidate(t *testing.T) {
	cases := []struct {
		name    string
		task    Task
		wantErr error
		ok      bool
	}{
		{
			name: "valid with project and due date",
			task: Task{Title: "Write spec", Status: TaskStatusPending, DueDate: "2026-03-01", Project: &ProjectRef{ID: 1}},
			ok:   true,
		},
		{
			name: "valid without project",
			task: Task{Title: "Standalone", Status: TaskStatusCompleted},
			ok:   true,
		},
		{
			name: "missing title",
			task: Task{Title: "   ", Status: TaskStatusPending},
		},
		{
			name:    "unknown status",
			task:    Task{Title: "x", Status: TaskStatus("DONE")},
			wantErr: ErrInvalidTaskStatus,
		},
		{
			name:    "malformed due date",
			task:    Task{Title: "x", Status: TaskStatusPending, DueDate: "03/01/2026"},
			wantErr: ErrInvalidDueDate,
		},
		{
			name: "project ref without id",
			task: Task{Title: "x", Status: TaskStatusPending, Project: &ProjectRef{}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.task.Validate()
			if tc.ok {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestProjectValidate(t *testing.T) {
	if err := (Project{Name: "Launch", Status: ProjectStatusActive}).Validate(); err != nil {
		t.Fatalf("expected valid project, got %v", err)
	}
	if err := (Project{Name: "", Status: ProjectStatusActive}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
	err := (Project{Name: "x", Status: ProjectStatus("PAUSED")}).Validate()
	if !errors.Is(err, ErrInvalidProjectStatus) {
		t.Fatalf("expected ErrInvalidProjectStatus, got %v", err)
	}
}

func TestTaskJSONProjectNull(t *testing.T) {
	raw, err := json.Marshal(Task{Title: "solo", Status: TaskStatusPending})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"project":null`) {
		t.Fatalf("expected explicit null project, got %s", raw)
	}

	var decoded Task
	payload := `{"id":4,"title":"t","status":"IN_PROGRESS","project":{"id":7,"name":"Launch"}}`
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ProjectID() != 7 {
		t.Fatalf("expected project id 7, got %d", decoded.ProjectID())
	}
}
