// Package state holds the client cache: the last successfully fetched full
// snapshot of each remote collection, which is the single source of truth
// for every rendered view.
package state

import "github.com/taskdeck/taskdeck/internal/model"

// Store keeps projects and tasks in the order the server returned them.
// A refresh replaces a collection wholesale; nothing ever merges partial
// knowledge into it. The store is only mutated from the update loop, so it
// carries no locking.
type Store struct {
	projects []model.Project
	tasks    []model.Task
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceProjects swaps in a fresh project snapshot, discarding the old one.
func (s *Store) ReplaceProjects(projects []model.Project) {
	s.projects = projects
}

// ReplaceTasks swaps in a fresh task snapshot, discarding the old one.
func (s *Store) ReplaceTasks(tasks []model.Task) {
	s.tasks = tasks
}

func (s *Store) Projects() []model.Project {
	return s.projects
}

func (s *Store) Tasks() []model.Task {
	return s.tasks
}

// ProjectByID looks a project up by identifier. Lookup is by id, never by
// display position: filtering and sorting reorder what is on screen.
func (s *Store) ProjectByID(id int64) (model.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (s *Store) TaskByID(id int64) (model.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
