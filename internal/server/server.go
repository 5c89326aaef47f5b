// Package server implements the REST backend the terminal client talks to:
// conventional CRUD over /api/projects and /api/tasks with JSON bodies.
// Deleting a project cascades to its tasks at the storage layer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/storage"
)

type HTTPServer struct {
	repo   storage.Repository
	logger *log.Logger
}

func NewHTTPServer(repo storage.Repository, logger *log.Logger) *HTTPServer {
	if logger == nil {
		logger = log.Default()
	}
	return &HTTPServer{repo: repo, logger: logger}
}

func (s *HTTPServer) Handler() http.Handler {
	return http.HandlerFunc(s.handle)
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")

	switch {
	case path == "/projects":
		s.handleProjects(w, r)
	case strings.HasPrefix(path, "/projects/"):
		s.handleProjectByID(w, r, strings.TrimPrefix(path, "/projects/"))
	case path == "/tasks":
		s.handleTasks(w, r)
	case strings.HasPrefix(path, "/tasks/"):
		s.handleTaskByID(w, r, strings.TrimPrefix(path, "/tasks/"))
	default:
		writeError(w, http.StatusNotFound, "unknown resource")
	}
}

func (s *HTTPServer) handleProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		rows, err := s.repo.ListProjects(ctx)
		if err != nil {
			s.fail(w, "list projects", err)
			return
		}
		out := make([]model.Project, 0, len(rows))
		for _, row := range rows {
			out = append(out, projectFromRow(row))
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var in model.Project
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid project payload")
			return
		}
		if in.Status == "" {
			in.Status = model.ProjectStatusActive
		}
		if err := in.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := s.repo.CreateProject(ctx, storage.Project{Name: in.Name, Status: string(in.Status)})
		if err != nil {
			s.fail(w, "create project", err)
			return
		}
		writeJSON(w, http.StatusOK, projectFromRow(created))
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleProjectByID(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		row, err := s.repo.GetProject(ctx, id)
		if err != nil {
			s.fail(w, "get project", err)
			return
		}
		writeJSON(w, http.StatusOK, projectFromRow(row))
	case http.MethodPut:
		var in model.Project
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid project payload")
			return
		}
		in.ID = id
		if in.Status == "" {
			in.Status = model.ProjectStatusActive
		}
		if err := in.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.repo.UpdateProject(ctx, storage.Project{ID: id, Name: in.Name, Status: string(in.Status)}); err != nil {
			s.fail(w, "update project", err)
			return
		}
		writeJSON(w, http.StatusOK, in)
	case http.MethodDelete:
		if err := s.repo.DeleteProject(ctx, id); err != nil {
			s.fail(w, "delete project", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		filter, err := taskFilterFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows, err := s.repo.ListTasks(ctx, filter)
		if err != nil {
			s.fail(w, "list tasks", err)
			return
		}
		out := make([]model.Task, 0, len(rows))
		for _, row := range rows {
			task, err := s.taskFromRow(ctx, row)
			if err != nil {
				s.fail(w, "embed task project", err)
				return
			}
			out = append(out, task)
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		in, ok := s.decodeTask(w, r)
		if !ok {
			return
		}
		created, err := s.repo.CreateTask(ctx, taskToRow(in))
		if err != nil {
			s.fail(w, "create task", err)
			return
		}
		task, err := s.taskFromRow(ctx, created)
		if err != nil {
			s.fail(w, "embed task project", err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleTaskByID(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		row, err := s.repo.GetTask(ctx, id)
		if err != nil {
			s.fail(w, "get task", err)
			return
		}
		task, err := s.taskFromRow(ctx, row)
		if err != nil {
			s.fail(w, "embed task project", err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodPut:
		in, ok := s.decodeTask(w, r)
		if !ok {
			return
		}
		row := taskToRow(in)
		row.ID = id
		if err := s.repo.UpdateTask(ctx, row); err != nil {
			s.fail(w, "update task", err)
			return
		}
		task, err := s.taskFromRow(ctx, row)
		if err != nil {
			s.fail(w, "embed task project", err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodPatch:
		var patch struct {
			Status *model.TaskStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid patch payload")
			return
		}
		if patch.Status == nil {
			writeError(w, http.StatusBadRequest, "patch requires a status field")
			return
		}
		if !patch.Status.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid task status")
			return
		}
		if err := s.repo.UpdateTaskStatus(ctx, id, string(*patch.Status)); err != nil {
			s.fail(w, "patch task status", err)
			return
		}
		row, err := s.repo.GetTask(ctx, id)
		if err != nil {
			s.fail(w, "get patched task", err)
			return
		}
		task, err := s.taskFromRow(ctx, row)
		if err != nil {
			s.fail(w, "embed task project", err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodDelete:
		if err := s.repo.DeleteTask(ctx, id); err != nil {
			s.fail(w, "delete task", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) decodeTask(w http.ResponseWriter, r *http.Request) (model.Task, bool) {
	var in model.Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task payload")
		return model.Task{}, false
	}
	if in.Status == "" {
		in.Status = model.TaskStatusPending
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.Task{}, false
	}
	return in, true
}

// taskFromRow embeds the referenced project record, matching the wire
// contract that a task's project field carries at least the id.
func (s *HTTPServer) taskFromRow(ctx context.Context, row storage.Task) (model.Task, error) {
	out := model.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      model.TaskStatus(row.Status),
		DueDate:     row.DueDate,
	}
	if row.ProjectID == 0 {
		return out, nil
	}
	project, err := s.repo.GetProject(ctx, row.ProjectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			out.Project = &model.ProjectRef{ID: row.ProjectID}
			return out, nil
		}
		return model.Task{}, err
	}
	out.Project = &model.ProjectRef{
		ID:     project.ID,
		Name:   project.Name,
		Status: model.ProjectStatus(project.Status),
	}
	return out, nil
}

func taskToRow(in model.Task) storage.Task {
	return storage.Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      string(in.Status),
		DueDate:     in.DueDate,
		ProjectID:   in.ProjectID(),
	}
}

func projectFromRow(row storage.Project) model.Project {
	return model.Project{ID: row.ID, Name: row.Name, Status: model.ProjectStatus(row.Status)}
}

func taskFilterFromQuery(r *http.Request) (storage.TaskListFilter, error) {
	var filter storage.TaskListFilter
	if raw := r.URL.Query().Get("projectId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errors.New("invalid projectId filter")
		}
		filter.ProjectID = id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		if !model.TaskStatus(raw).IsValid() {
			return filter, errors.New("invalid status filter")
		}
		filter.Status = raw
	}
	return filter, nil
}

func (s *HTTPServer) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.logger.Printf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
