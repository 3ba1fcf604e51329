// Package cuesapi implements the service.Service interface over the cues REST API.
package cuesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"cues/internal/config"
	"cues/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// UserAgent identifies the client to the service.
	UserAgent = "Cues-CLI"
)

// Client implements service.Service using the cues REST API.
type Client struct {
	r requester
}

// New creates a client authenticated with the stored token.
// An expired access token is refreshed on first use and written back to token.json.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	token, err := cfg.LoadToken()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, service.ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, service.ErrNotLoggedIn
	}

	src := TokenSource(ctx, cfg, token)

	// Create HTTP client that injects the bearer token
	httpClient := oauth2.NewClient(ctx, src)

	return NewWithHTTPClient(cfg.APIURL(), httpClient, cfg.Log()), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	return &Client{r: newRequester(baseURL, httpClient, log)}
}

// ListProjects returns all projects in API order.
func (c *Client) ListProjects(ctx context.Context) ([]service.Project, error) {
	var projects []wireProject
	if err := c.r.call(ctx, http.MethodGet, "/projects", nil, "projects", &projects); err != nil {
		return nil, err
	}

	result := make([]service.Project, 0, len(projects))
	for _, p := range projects {
		result = append(result, p.toService())
	}
	return result, nil
}

// GetProject returns a single project.
func (c *Client) GetProject(ctx context.Context, id int) (service.Project, error) {
	return c.project(ctx, http.MethodGet, projectPath(id), nil)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, name string) (service.Project, error) {
	return c.project(ctx, http.MethodPost, "/projects/new", wireProjectName{Name: name})
}

// RenameProject renames a project.
func (c *Client) RenameProject(ctx context.Context, id int, name string) (service.Project, error) {
	return c.project(ctx, http.MethodPut, projectPath(id), wireProjectName{Name: name})
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id int) (service.Project, error) {
	return c.project(ctx, http.MethodDelete, projectPath(id), nil)
}

// ListTasks returns every task across projects.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []wireTask
	if err := c.r.call(ctx, http.MethodGet, "/tasks", nil, "tasks", &tasks); err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, t.toService())
	}
	return result, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	return c.task(ctx, http.MethodPost, "/tasks/new", fromNewTask(task))
}

// UpdateTask sends only the fields set in patch.
func (c *Client) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	return c.task(ctx, http.MethodPut, taskPath(id), fromTaskPatch(patch))
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) (service.Task, error) {
	return c.task(ctx, http.MethodDelete, taskPath(id), nil)
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (service.User, error) {
	var u wireUser
	if err := c.r.call(ctx, http.MethodGet, "/auth/user", nil, "user", &u); err != nil {
		return service.User{}, err
	}
	return u.toService(), nil
}

func (c *Client) project(ctx context.Context, method, path string, body any) (service.Project, error) {
	var p wireProject
	if err := c.r.call(ctx, method, path, body, "project", &p); err != nil {
		return service.Project{}, err
	}
	return p.toService(), nil
}

func (c *Client) task(ctx context.Context, method, path string, body any) (service.Task, error) {
	var t wireTask
	if err := c.r.call(ctx, method, path, body, "task", &t); err != nil {
		return service.Task{}, err
	}
	return t.toService(), nil
}

func projectPath(id int) string { return fmt.Sprintf("/projects/%d", id) }
func taskPath(id int) string    { return fmt.Sprintf("/tasks/%d", id) }

// requester sends JSON requests and decodes the service's response envelope.
type requester struct {
	http    *http.Client
	baseURL string
	log     *zap.Logger
}

func newRequester(baseURL string, httpClient *http.Client, log *zap.Logger) requester {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return requester{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// envelope is a decoded response body: top-level keys to raw values.
type envelope struct {
	status int
	fields map[string]json.RawMessage
}

// decode unmarshals the value under key, or reports the service's error.
func (e envelope) decode(key string, out any) error {
	raw, ok := e.fields[key]
	if !ok || e.status >= 400 {
		return newAPIError(e.status, e.fields)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid %s in response: %w", key, err)
	}
	return nil
}

func (r requester) call(ctx context.Context, method, path string, body any, key string, out any) error {
	env, err := r.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	return env.decode(key, out)
}

func (r requester) do(ctx context.Context, method, path string, body any) (envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, rdr)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return envelope{}, wrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, wrapError(err)
	}
	r.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	env := envelope{status: resp.StatusCode}
	// A non-JSON body leaves fields empty; decode then reports the status.
	_ = json.Unmarshal(data, &env.fields)
	return env, nil
}
