package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProjectStatus = errors.New("model: invalid project status")

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived:
		return true
	default:
		return false
	}
}

// Project mirrors the wire shape of the /projects resource. The ID is
// assigned by the store; zero means "not created yet".
type Project struct {
	ID     int64         `json:"id,omitempty"`
	Name   string        `json:"name"`
	Status ProjectStatus `json:"status"`
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidProjectStatus, p.Status)
	}
	return nil
}
