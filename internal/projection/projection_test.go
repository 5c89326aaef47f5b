package projection

import (
	"reflect"
	"testing"

	"github.com/taskdeck/taskdeck/internal/model"
)

func ref(id int64) *model.ProjectRef {
	return &model.ProjectRef{ID: id}
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Write spec", Status: model.TaskStatusPending, DueDate: "2026-03-10", Project: ref(7)},
		{ID: 2, Title: "Archive logs", Status: model.TaskStatusCompleted, Project: ref(7)},
		{ID: 3, Title: "Deploy", Status: model.TaskStatusInProgress, DueDate: "2026-03-01", Project: ref(9)},
		{ID: 4, Title: "Backup", Status: model.TaskStatusPending},
	}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestVisibleTasksFiltering(t *testing.T) {
	tasks := sampleTasks()

	cases := []struct {
		name string
		sel  Selection
		want []int64
	}{
		{"no filters title sort", Selection{Sort: SortByTitle}, []int64{2, 4, 3, 1}},
		{"project filter", Selection{ProjectID: 7, Sort: SortByTitle}, []int64{2, 1}},
		{"status filter", Selection{Status: model.TaskStatusPending, Sort: SortByTitle}, []int64{4, 1}},
		{"both filters", Selection{ProjectID: 7, Status: model.TaskStatusCompleted, Sort: SortByTitle}, []int64{2}},
		{"both filters empty result", Selection{ProjectID: 9, Status: model.TaskStatusCompleted, Sort: SortByTitle}, []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(VisibleTasks(tasks, tc.sel))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestVisibleTasksTitleSortIgnoresCase(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "Banana", Status: model.TaskStatusPending},
		{ID: 2, Title: "apple", Status: model.TaskStatusPending},
		{ID: 3, Title: "cherry", Status: model.TaskStatusPending},
	}
	got := ids(VisibleTasks(tasks, Selection{Sort: SortByTitle}))
	want := []int64{2, 1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestVisibleTasksDueDateSortMissingFirst(t *testing.T) {
	tasks := sampleTasks()
	got := ids(VisibleTasks(tasks, Selection{Sort: SortByDueDate}))
	// Tasks 2 and 4 have no due date and must come first, keeping their
	// relative cache order (stable sort).
	want := []int64{2, 4, 3, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestVisibleTasksDeterministicAndNonMutating(t *testing.T) {
	tasks := sampleTasks()
	sel := Selection{Status: model.TaskStatusPending, Sort: SortByDueDate}

	first := VisibleTasks(tasks, sel)
	second := VisibleTasks(tasks, sel)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("projection not deterministic: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(ids(tasks), []int64{1, 2, 3, 4}) {
		t.Fatalf("input slice was reordered: %v", ids(tasks))
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTasks())
	if s.Total != 4 || s.Pending != 2 || s.InProgress != 1 || s.Completed != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Pending+s.InProgress+s.Completed != s.Total {
		t.Fatalf("counts do not add up: %+v", s)
	}

	withUnknown := append(sampleTasks(), model.Task{ID: 5, Title: "odd", Status: model.TaskStatus("BLOCKED")})
	s = Summarize(withUnknown)
	if s.Total != 5 || s.Pending+s.InProgress+s.Completed != 4 {
		t.Fatalf("unknown status should count toward total only: %+v", s)
	}
}

func TestStatusLabelAndBadge(t *testing.T) {
	cases := []struct {
		status string
		label  string
		badge  Badge
	}{
		{"PENDING", "Pending", BadgeWarn},
		{"IN_PROGRESS", "In Progress", BadgeInfo},
		{"COMPLETED", "Completed", BadgeOK},
		{"ACTIVE", "Active", BadgeOK},
		{"ARCHIVED", "Archived", BadgeMuted},
		{"SOMETHING_ELSE", "SOMETHING_ELSE", BadgeMuted},
	}
	for _, tc := range cases {
		if got := StatusLabel(tc.status); got != tc.label {
			t.Fatalf("label for %s: expected %q, got %q", tc.status, tc.label, got)
		}
		if got := StatusBadge(tc.status); got != tc.badge {
			t.Fatalf("badge for %s: expected %q, got %q", tc.status, tc.badge, got)
		}
	}
}

func TestResolveProjectName(t *testing.T) {
	projects := []model.Project{{ID: 7, Name: "Launch", Status: model.ProjectStatusActive}}

	joined := ResolveProjectName(projects, model.Task{Project: &model.ProjectRef{ID: 7, Name: "stale"}})
	if joined != "Launch" {
		t.Fatalf("expected cache name to win, got %q", joined)
	}
	fallback := ResolveProjectName(projects, model.Task{Project: &model.ProjectRef{ID: 99, Name: "Ghost"}})
	if fallback != "Ghost" {
		t.Fatalf("expected embedded fallback, got %q", fallback)
	}
	if got := ResolveProjectName(projects, model.Task{}); got != "-" {
		t.Fatalf("expected dash for unassigned, got %q", got)
	}
}

func TestProjectOptionsPreserveOrder(t *testing.T) {
	projects := []model.Project{
		{ID: 3, Name: "Zeta"},
		{ID: 1, Name: "Alpha"},
	}
	opts := ProjectOptions(projects)
	if len(opts) != 2 || opts[0].ID != 3 || opts[1].Label != "Alpha" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
