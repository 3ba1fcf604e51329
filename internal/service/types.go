// Package service defines the backend-agnostic interface for project and task operations.
package service

import (
	"fmt"
	"strings"
	"time"
)

// Priority is a task priority as the API spells it.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority parses high, medium or low in any case.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("invalid priority: %s (want high, medium or low)", s)
}

// Project represents a project owning tasks.
type Project struct {
	ID        int
	Name      string
	UserID    int
	CreatedAt time.Time
}

// Task represents a single task item.
type Task struct {
	ID          int
	Title       string
	Description string
	Due         time.Time // zero if unset
	Priority    Priority  // empty if unset
	ProjectID   int
	Done        bool
	CreatedAt   time.Time
}

// User is the authenticated account.
type User struct {
	ID        int
	Username  string
	Email     string
	CreatedAt time.Time
}

// NewTask holds the fields for task creation.
// Zero values are omitted from the request.
type NewTask struct {
	Title       string
	ProjectID   int
	Description string
	Due         time.Time
	Priority    Priority
}

// TaskPatch is a partial task update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Due         *time.Time
	Done        *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Due == nil && p.Done == nil
}
