package commands_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"cues/internal/commands"
	"cues/internal/config"
	"cues/internal/exitcode"
)

// loginServer accepts ada/hunter2 and rejects everything else.
func loginServer(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad login body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "hunter2" || (body["username"] != "ada" && body["email"] != "ada@example.com") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"a1","refreshToken":"r1"}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv(config.APIURLEnv, srv.URL+"/api")
}

func TestLoginCommand_SavesTokenAndResetsProject(t *testing.T) {
	loginServer(t)
	cfg := withActiveProject(t, 2, "Work")

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("ada@example.com\nhunter2\n"))
	stdout, stderr, code := runCommand(t, cmd, cfg, nil, nil)
	expect(t, stdout, stderr, code, "ok\n", "Username or email: Password: ", exitcode.Success)

	tok, err := cfg.LoadToken()
	if err != nil {
		t.Fatalf("failed to load token: %v", err)
	}
	if tok.AccessToken != "a1" || tok.RefreshToken != "r1" {
		t.Errorf("unexpected token: %+v", tok)
	}
	if want := now.Add(time.Hour); !tok.Expiry.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, tok.Expiry)
	}

	s, _ := cfg.LoadSettings()
	if s.HasActiveProject() {
		t.Errorf("expected active project cleared, got %+v", s)
	}
}

func TestLoginCommand_Username(t *testing.T) {
	loginServer(t)
	cfg := newConfig(t)
	cfg.Quiet = true

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("ada\r\nhunter2"))
	stdout, _, code := runCommand(t, cmd, cfg, nil, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
	if !cfg.HasToken() {
		t.Error("expected token to be saved")
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	loginServer(t)
	cfg := newConfig(t)

	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("ada\nwrong\n"))
	stdout, stderr, code := runCommand(t, cmd, cfg, nil, nil)

	wantErr := "Username or email: Password: error: login failed: Invalid credentials\n"
	expect(t, stdout, stderr, code, "", wantErr, exitcode.AuthError)
	if cfg.HasToken() {
		t.Error("no token should be saved")
	}
}

func TestLoginCommand_EmptyInput(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("\n"))
	stdout, stderr, code := runCommand(t, cmd, newConfig(t), nil, nil)
	expect(t, stdout, stderr, code, "", "Username or email: error: username or email required\n", exitcode.UserError)

	cmd.SetInput(strings.NewReader("ada\n\n"))
	stdout, stderr, code = runCommand(t, cmd, newConfig(t), nil, nil)
	expect(t, stdout, stderr, code, "", "Username or email: Password: error: password required\n", exitcode.UserError)
}

func TestLogoutCommand_RemovesToken(t *testing.T) {
	cfg := withActiveProject(t, 2, "Work")
	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "a1", RefreshToken: "r1"}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, cfg, nil, nil)
	expect(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	if cfg.HasToken() {
		t.Error("expected token.json to be removed")
	}
	s, _ := cfg.LoadSettings()
	if s.HasActiveProject() {
		t.Errorf("expected active project cleared, got %+v", s)
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, newConfig(t), nil, nil)
	expect(t, stdout, stderr, code, "not logged in\n", "", exitcode.Success)
}
