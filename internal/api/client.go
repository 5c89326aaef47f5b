// Package api is the remote store gateway: a thin typed wrapper around the
// REST backend. It performs no caching and no validation beyond decoding;
// every failure is surfaced once to the caller with no retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/model"
)

// ErrNotFound reports that the referenced entity is absent server-side.
var ErrNotFound = errors.New("api: not found")

// DecodeError reports a response that could not be decoded into the expected
// shape. It is distinct from transport failure so callers can tell a dead
// server from a misbehaving one.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to one backend. It is safe for use from Bubble Tea commands:
// every method issues a single request and returns.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// NewClientWithHTTP is used by tests to point the gateway at an httptest
// server or a stub transport.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	c := NewClient(baseURL)
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, in model.Project) (model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", in, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func (c *Client) UpdateProject(ctx context.Context, in model.Project) (model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", in.ID), in, &out); err != nil {
		return model.Project{}, err
	}
	return out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.Task) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, in model.Task) (model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", in.ID), in, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

// SetTaskStatus issues the status-only partial update used by the checkbox
// toggle. No other task field travels with it.
func (c *Client) SetTaskStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	body := struct {
		Status model.TaskStatus `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), body, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build %s: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case res.StatusCode >= 400:
		return fmt.Errorf("api: %s: unexpected status %d", op, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
