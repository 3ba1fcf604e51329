package cuesapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"cues/internal/backend/cuesapi"
	"cues/internal/clock"
	"cues/internal/config"
	"cues/internal/service"
)

// newServer starts a test server and a client pointed at it.
func newServer(t *testing.T, h http.HandlerFunc) *cuesapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return cuesapi.NewWithHTTPClient(srv.URL+"/api/", srv.Client(), nil)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestListProjects(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, cuesapi.UserAgent, r.Header.Get("User-Agent"))
		writeJSON(w, 200, `{"projects":[
			{"id":1,"name":"Home","userId":3,"createdAt":"2025-06-01T10:00:00.000Z"},
			{"id":2,"name":"Work","userId":3,"createdAt":"2025-06-02T10:00:00Z"}]}`)
	})

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 1, projects[0].ID)
	assert.Equal(t, "Home", projects[0].Name)
	assert.Equal(t, 3, projects[0].UserID)
	assert.True(t, projects[0].CreatedAt.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Work", projects[1].Name)
}

func TestListTasks_NullableFields(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"tasks":[
			{"id":5,"title":"Write report","description":"Q2 numbers","due":"2025-06-12T22:30:00Z","priority":"High","projectId":2,"isDone":false,"createdAt":"2025-06-01T10:00:00Z"},
			{"id":6,"title":"Stretch","description":null,"due":null,"priority":null,"projectId":2,"isDone":true,"createdAt":"2025-06-01T10:00:00Z"}]}`)
	})

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Q2 numbers", tasks[0].Description)
	assert.Equal(t, service.PriorityHigh, tasks[0].Priority)
	assert.True(t, tasks[0].Due.Equal(time.Date(2025, 6, 12, 22, 30, 0, 0, time.UTC)))
	assert.False(t, tasks[0].Done)

	assert.Empty(t, tasks[1].Description)
	assert.Empty(t, tasks[1].Priority)
	assert.True(t, tasks[1].Due.IsZero())
	assert.True(t, tasks[1].Done)
}

func TestCreateTask_Payload(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks/new", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"title":     "Write report",
			"projectId": float64(2),
			"due":       "2025-06-12T22:30:00Z",
			"priority":  "High",
		}, body)

		writeJSON(w, 201, `{"task":{"id":9,"title":"Write report","due":"2025-06-12T22:30:00Z","priority":"High","projectId":2,"isDone":false,"createdAt":"2025-06-10T05:30:00Z"}}`)
	})

	ist := time.FixedZone("IST", 5*3600+30*60)
	task, err := client.CreateTask(context.Background(), service.NewTask{
		Title:     "Write report",
		ProjectID: 2,
		Due:       time.Date(2025, 6, 13, 4, 0, 0, 0, ist),
		Priority:  service.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, task.ID)
}

func TestUpdateTask_SendsOnlySetFields(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tasks/9", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"title": "Renamed", "isDone": false}, body)

		writeJSON(w, 200, `{"task":{"id":9,"title":"Renamed","projectId":2,"isDone":false}}`)
	})

	title, done := "Renamed", false
	task, err := client.UpdateTask(context.Background(), 9, service.TaskPatch{Title: &title, Done: &done})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", task.Title)
}

func TestProjectCalls(t *testing.T) {
	var got []string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		writeJSON(w, 200, `{"project":{"id":4,"name":"Garden","userId":1}}`)
	})

	ctx := context.Background()
	_, err := client.GetProject(ctx, 4)
	require.NoError(t, err)
	_, err = client.CreateProject(ctx, "Garden")
	require.NoError(t, err)
	_, err = client.RenameProject(ctx, 4, "Garden")
	require.NoError(t, err)
	p, err := client.DeleteProject(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Garden", p.Name)

	assert.Equal(t, []string{
		"GET /api/projects/4",
		"POST /api/projects/new",
		"PUT /api/projects/4",
		"DELETE /api/projects/4",
	}, got)
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		message  string
		notFound bool
		unauth   bool
		rejected bool
	}{
		{"message field", 400, `{"message":"Title is required"}`, "Title is required", false, false, true},
		{"error field", 404, `{"error":"Task not found"}`, "Task not found", true, false, false},
		{"unauthorized", 401, `{"message":"Invalid token"}`, "Invalid token", false, true, false},
		{"missing key", 200, `{"ok":true}`, "unexpected response from server", false, false, false},
		{"not json", 500, `<html>oops</html>`, "internal server error", false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})

			_, err := client.DeleteTask(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())

			var apiErr *cuesapi.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.notFound, errors.Is(err, service.ErrNotFound))
			assert.Equal(t, tc.unauth, errors.Is(err, service.ErrUnauthorized))
			assert.Equal(t, tc.rejected, errors.Is(err, service.ErrRejected))
		})
	}
}

func TestNew_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	_, err := cuesapi.New(context.Background(), cfg)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
}

// authServer serves /auth/refresh and /tasks, recording the bearer tokens seen.
type authServer struct {
	refreshes int
	bearers   []string

	// rejectStatus, when set, is the status /auth/refresh answers with.
	rejectStatus  int
	rejectMessage string
}

func (s *authServer) start(t *testing.T) *config.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			s.refreshes++
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refresh-1", body["refresh_token"])
			if s.rejectStatus != 0 {
				writeJSON(w, s.rejectStatus, `{"message":"`+s.rejectMessage+`"}`)
				return
			}
			writeJSON(w, 200, `{"accessToken":"fresh"}`)
		case "/api/tasks":
			s.bearers = append(s.bearers, r.Header.Get("Authorization"))
			writeJSON(w, 200, `{"tasks":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv(config.APIURLEnv, srv.URL+"/api")
	return &config.Config{Dir: t.TempDir()}
}

func TestNew_ValidTokenIsUsedAsIs(t *testing.T) {
	as := &authServer{}
	cfg := as.start(t)
	require.NoError(t, cfg.SaveToken(&oauth2.Token{
		AccessToken: "stored", RefreshToken: "refresh-1", Expiry: time.Now().Add(time.Hour),
	}))

	client, err := cuesapi.New(context.Background(), cfg)
	require.NoError(t, err)
	_, err = client.ListTasks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, as.refreshes)
	assert.Equal(t, []string{"Bearer stored"}, as.bearers)
}

func TestNew_ExpiredTokenIsRefreshedAndSaved(t *testing.T) {
	as := &authServer{}
	cfg := as.start(t)
	require.NoError(t, cfg.SaveToken(&oauth2.Token{
		AccessToken: "stale", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Minute),
	}))

	client, err := cuesapi.New(context.Background(), cfg)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = client.ListTasks(ctx)
	require.NoError(t, err)
	_, err = client.ListTasks(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, as.refreshes)
	assert.Equal(t, []string{"Bearer fresh", "Bearer fresh"}, as.bearers)

	saved, err := cfg.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "fresh", saved.AccessToken)
	assert.Equal(t, "refresh-1", saved.RefreshToken)
	assert.True(t, saved.Expiry.After(time.Now().Add(50*time.Minute)))
}

func TestNew_MissingExpiryCountsAsExpired(t *testing.T) {
	as := &authServer{}
	cfg := as.start(t)
	require.NoError(t, cfg.SaveToken(&oauth2.Token{AccessToken: "stored", RefreshToken: "refresh-1"}))

	client, err := cuesapi.New(context.Background(), cfg)
	require.NoError(t, err)
	_, err = client.ListTasks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, as.refreshes)
	assert.Equal(t, []string{"Bearer fresh"}, as.bearers)
}

func TestNew_RejectedRefreshIsUnauthorized(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
	}{
		{"bad request", 400, "Invalid refresh token"},
		{"unauthorized", 401, "bad refresh"},
		{"forbidden", 403, "revoked"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			as := &authServer{rejectStatus: tc.status, rejectMessage: tc.message}
			cfg := as.start(t)
			require.NoError(t, cfg.SaveToken(&oauth2.Token{
				AccessToken: "stale", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Minute),
			}))

			client, err := cuesapi.New(context.Background(), cfg)
			require.NoError(t, err)
			_, err = client.ListTasks(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrUnauthorized)
			assert.Equal(t, service.ErrUnauthorized.Error()+": "+tc.message, err.Error())
			assert.NotContains(t, err.Error(), "http://")
			assert.Empty(t, as.bearers)
		})
	}
}

func TestNew_RefreshUsesConfiguredClock(t *testing.T) {
	as := &authServer{}
	cfg := as.start(t)
	fixed := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	cfg.Clock = clock.Fixed(fixed)
	require.NoError(t, cfg.SaveToken(&oauth2.Token{
		AccessToken: "stale", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Minute),
	}))

	client, err := cuesapi.New(context.Background(), cfg)
	require.NoError(t, err)
	_, err = client.ListTasks(context.Background())
	require.NoError(t, err)

	saved, err := cfg.LoadToken()
	require.NoError(t, err)
	assert.True(t, saved.Expiry.Equal(fixed.Add(cuesapi.AccessTokenLifetime)), "expiry %v", saved.Expiry)
}

func TestTokenSource_SaveFailureWarns(t *testing.T) {
	as := &authServer{}
	cfg := as.start(t)

	// A regular file where the config directory should be makes every save fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	cfg.Dir = filepath.Join(blocker, "cues")
	var errOut bytes.Buffer
	cfg.ErrOut = &errOut

	src := cuesapi.TokenSource(context.Background(), cfg, &oauth2.Token{
		AccessToken: "stale", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Minute),
	})
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
	assert.True(t, strings.HasPrefix(errOut.String(), "warning: failed to save refreshed token: "), "stderr %q", errOut.String())
	assert.Equal(t, 1, strings.Count(errOut.String(), "\n"))
}

func TestLogin(t *testing.T) {
	var bodies []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, cuesapi.UserAgent, r.Header.Get("User-Agent"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		if body["password"] != "hunter2" {
			writeJSON(w, 401, `{"message":"Invalid credentials"}`)
			return
		}
		writeJSON(w, 200, `{"accessToken":"a1","refreshToken":"r1"}`)
	}))
	defer srv.Close()

	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, srv.Client())

	tok, err := cuesapi.Login(ctx, srv.URL+"/api", "ada@example.com", "hunter2", now)
	require.NoError(t, err)
	assert.Equal(t, "a1", tok.AccessToken)
	assert.Equal(t, "r1", tok.RefreshToken)
	assert.True(t, tok.Expiry.Equal(now.Add(cuesapi.AccessTokenLifetime)))

	_, err = cuesapi.Login(ctx, srv.URL+"/api", "ada", "wrong", now)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.EqualError(t, err, "Invalid credentials")

	require.Len(t, bodies, 2)
	assert.Equal(t, map[string]string{"email": "ada@example.com", "password": "hunter2"}, bodies[0])
	assert.Equal(t, map[string]string{"username": "ada", "password": "wrong"}, bodies[1])
}
