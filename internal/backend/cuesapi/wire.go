package cuesapi

import (
	"time"

	"cues/internal/service"
)

type wireProject struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UserID    int    `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

type wireTask struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Due         *string `json:"due"`
	Priority    *string `json:"priority"`
	ProjectID   int     `json:"projectId"`
	IsDone      bool    `json:"isDone"`
	CreatedAt   string  `json:"createdAt"`
}

type wireUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type wireNewTask struct {
	Title       string `json:"title"`
	ProjectID   int    `json:"projectId"`
	Description string `json:"description,omitempty"`
	Due         string `json:"due,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type wireTaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Due         *string `json:"due,omitempty"`
	IsDone      *bool   `json:"isDone,omitempty"`
}

type wireProjectName struct {
	Name string `json:"name"`
}

func (p wireProject) toService() service.Project {
	return service.Project{
		ID:        p.ID,
		Name:      p.Name,
		UserID:    p.UserID,
		CreatedAt: parseTime(p.CreatedAt),
	}
}

func (t wireTask) toService() service.Task {
	task := service.Task{
		ID:        t.ID,
		Title:     t.Title,
		ProjectID: t.ProjectID,
		Done:      t.IsDone,
		CreatedAt: parseTime(t.CreatedAt),
	}
	if t.Description != nil {
		task.Description = *t.Description
	}
	if t.Due != nil {
		task.Due = parseTime(*t.Due)
	}
	if t.Priority != nil {
		if p, err := service.ParsePriority(*t.Priority); err == nil {
			task.Priority = p
		}
	}
	return task
}

func (u wireUser) toService() service.User {
	return service.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: parseTime(u.CreatedAt),
	}
}

func fromNewTask(t service.NewTask) wireNewTask {
	w := wireNewTask{
		Title:       t.Title,
		ProjectID:   t.ProjectID,
		Description: t.Description,
		Priority:    string(t.Priority),
	}
	if !t.Due.IsZero() {
		w.Due = formatTime(t.Due)
	}
	return w
}

func fromTaskPatch(p service.TaskPatch) wireTaskPatch {
	w := wireTaskPatch{
		Title:       p.Title,
		Description: p.Description,
		IsDone:      p.Done,
	}
	if p.Priority != nil {
		s := string(*p.Priority)
		w.Priority = &s
	}
	if p.Due != nil {
		s := formatTime(*p.Due)
		w.Due = &s
	}
	return w
}

// parseTime parses an RFC 3339 timestamp; anything else yields the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
