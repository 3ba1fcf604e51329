// Package service defines the backend-agnostic interface for project and task operations.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotLoggedIn means no stored credentials exist.
	ErrNotLoggedIn = errors.New("not logged in (run: cues login)")

	// ErrUnauthorized means the stored credentials were rejected or could not be refreshed.
	ErrUnauthorized = errors.New("session expired or revoked (run: cues login)")

	// ErrNotFound means the requested project or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRejected means the service refused the request as invalid.
	ErrRejected = errors.New("request rejected")
)

// Service defines the interface for task backend operations.
// All REST calls go through this interface; commands never build requests directly.
type Service interface {
	// ListProjects returns all projects of the current user in API order.
	ListProjects(ctx context.Context) ([]Project, error)

	// GetProject returns a single project.
	GetProject(ctx context.Context, id int) (Project, error)

	// CreateProject creates a project and returns it.
	CreateProject(ctx context.Context, name string) (Project, error)

	// RenameProject changes a project's name and returns the updated project.
	RenameProject(ctx context.Context, id int, name string) (Project, error)

	// DeleteProject deletes a project and returns it as it was.
	DeleteProject(ctx context.Context, id int) (Project, error)

	// ListTasks returns every task of the current user, across projects.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id int, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task and returns it as it was.
	DeleteTask(ctx context.Context, id int) (Task, error)

	// CurrentUser returns the authenticated user.
	CurrentUser(ctx context.Context) (User, error)
}
