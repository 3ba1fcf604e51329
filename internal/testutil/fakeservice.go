// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cues/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	projects []service.Project
	tasks    []service.Task
	user     service.User
	nextID   int

	// Last request payloads, for assertions.
	LastNewTask service.NewTask
	LastPatch   service.TaskPatch

	// Calls counts service calls by method name.
	Calls map[string]int

	// Error injection for testing
	ListProjectsErr  error
	GetProjectErr    error
	CreateProjectErr error
	RenameProjectErr error
	DeleteProjectErr error
	ListTasksErr     error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
	CurrentUserErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 100,
		Calls:  make(map[string]int),
		user: service.User{
			ID:        1,
			Username:  "ada",
			Email:     "ada@example.com",
			CreatedAt: time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC),
		},
	}
}

// AddProject adds a project.
func (f *FakeService) AddProject(id int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, service.Project{ID: id, Name: name, UserID: f.user.ID})
}

// AddTask adds a task as given.
func (f *FakeService) AddTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// SetUser replaces the user returned by CurrentUser.
func (f *FakeService) SetUser(u service.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = u
}

// Task returns the stored task with id.
func (f *FakeService) Task(id int) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Project returns the stored project with id.
func (f *FakeService) Project(id int) (service.Project, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.projects {
		if p.ID == id {
			return p, true
		}
	}
	return service.Project{}, false
}

func (f *FakeService) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[name]++
}

func (f *FakeService) newID() int {
	f.nextID++
	return f.nextID
}

func projectNotFound(id int) error {
	return fmt.Errorf("project %d %w", id, service.ErrNotFound)
}

func taskNotFound(id int) error {
	return fmt.Errorf("task %d %w", id, service.ErrNotFound)
}

// ListProjects implements service.Service.
func (f *FakeService) ListProjects(ctx context.Context) ([]service.Project, error) {
	f.called("ListProjects")
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Project, len(f.projects))
	copy(result, f.projects)
	return result, nil
}

// GetProject implements service.Service.
func (f *FakeService) GetProject(ctx context.Context, id int) (service.Project, error) {
	f.called("GetProject")
	if f.GetProjectErr != nil {
		return service.Project{}, f.GetProjectErr
	}
	if p, ok := f.Project(id); ok {
		return p, nil
	}
	return service.Project{}, projectNotFound(id)
}

// CreateProject implements service.Service.
func (f *FakeService) CreateProject(ctx context.Context, name string) (service.Project, error) {
	f.called("CreateProject")
	if f.CreateProjectErr != nil {
		return service.Project{}, f.CreateProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := service.Project{ID: f.newID(), Name: name, UserID: f.user.ID}
	f.projects = append(f.projects, p)
	return p, nil
}

// RenameProject implements service.Service.
func (f *FakeService) RenameProject(ctx context.Context, id int, name string) (service.Project, error) {
	f.called("RenameProject")
	if f.RenameProjectErr != nil {
		return service.Project{}, f.RenameProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Name = name
			return f.projects[i], nil
		}
	}
	return service.Project{}, projectNotFound(id)
}

// DeleteProject implements service.Service. Tasks of the project are removed with it.
func (f *FakeService) DeleteProject(ctx context.Context, id int) (service.Project, error) {
	f.called("DeleteProject")
	if f.DeleteProjectErr != nil {
		return service.Project{}, f.DeleteProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			kept := f.tasks[:0]
			for _, t := range f.tasks {
				if t.ProjectID != id {
					kept = append(kept, t)
				}
			}
			f.tasks = kept
			return p, nil
		}
	}
	return service.Project{}, projectNotFound(id)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.called("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.called("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if _, ok := f.Project(task.ProjectID); !ok {
		return service.Task{}, projectNotFound(task.ProjectID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastNewTask = task
	t := service.Task{
		ID:          f.newID(),
		Title:       task.Title,
		Description: task.Description,
		Due:         task.Due,
		Priority:    task.Priority,
		ProjectID:   task.ProjectID,
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	f.called("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPatch = patch
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Due != nil {
			t.Due = *patch.Due
		}
		if patch.Done != nil {
			t.Done = *patch.Done
		}
		return *t, nil
	}
	return service.Task{}, taskNotFound(id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) (service.Task, error) {
	f.called("DeleteTask")
	if f.DeleteTaskErr != nil {
		return service.Task{}, f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return t, nil
		}
	}
	return service.Task{}, taskNotFound(id)
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser(ctx context.Context) (service.User, error) {
	f.called("CurrentUser")
	if f.CurrentUserErr != nil {
		return service.User{}, f.CurrentUserErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}
