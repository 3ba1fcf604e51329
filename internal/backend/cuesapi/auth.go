package cuesapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"cues/internal/config"
	"cues/internal/service"
)

// AccessTokenLifetime is how long an access token is trusted after login or
// refresh. The service does not report expiry, so this is fixed client-side.
const AccessTokenLifetime = time.Hour

// Login exchanges a username or email and password for a token pair.
// An identifier containing "@" is sent as an email, otherwise as a username.
func Login(ctx context.Context, baseURL, identifier, password string, now time.Time) (*oauth2.Token, error) {
	payload := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		payload["email"] = identifier
	} else {
		payload["username"] = identifier
	}

	r := newRequester(baseURL, contextClient(ctx), zap.NewNop())
	env, err := r.do(ctx, http.MethodPost, "/auth/login", payload)
	if err != nil {
		return nil, err
	}

	var access, refresh string
	if err := env.decode("accessToken", &access); err != nil {
		return nil, err
	}
	if err := env.decode("refreshToken", &refresh); err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		Expiry:       now.Add(AccessTokenLifetime),
	}, nil
}

// TokenSource returns a source that serves token while it is valid and
// refreshes it through the API once it has expired. Every new token is saved
// to cfg; a failed save is reported as a warning on cfg.ErrOut. Expiry follows
// cfg's clock. A token without an expiry is treated as expired.
func TokenSource(ctx context.Context, cfg *config.Config, token *oauth2.Token) oauth2.TokenSource {
	initial := *token
	if initial.Expiry.IsZero() {
		initial.AccessToken = ""
	}

	refresher := &refreshSource{
		ctx:          ctx,
		r:            newRequester(cfg.APIURL(), contextClient(ctx), cfg.Log()),
		refreshToken: token.RefreshToken,
		now:          cfg.Now,
	}
	return &persistingSource{
		src:  oauth2.ReuseTokenSource(&initial, refresher),
		last: initial.AccessToken,
		cfg:  cfg,
	}
}

// refreshSource obtains a new access token from /auth/refresh.
type refreshSource struct {
	ctx          context.Context
	r            requester
	refreshToken string
	now          func() time.Time
}

func (s *refreshSource) Token() (*oauth2.Token, error) {
	if s.refreshToken == "" {
		return nil, service.ErrUnauthorized
	}
	s.r.log.Debug("refreshing access token")

	env, err := s.r.do(s.ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": s.refreshToken})
	if err != nil {
		return nil, err
	}

	var access string
	if err := env.decode("accessToken", &access); err != nil {
		// Any client error means the refresh token is no longer usable.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %s", service.ErrUnauthorized, apiErr.Message)
		}
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: s.refreshToken,
		TokenType:    "Bearer",
		Expiry:       s.now().Add(AccessTokenLifetime),
	}, nil
}

// persistingSource saves each token it has not seen before.
type persistingSource struct {
	mu   sync.Mutex
	src  oauth2.TokenSource
	last string
	cfg  *config.Config
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t.AccessToken != s.last {
		if err := s.cfg.SaveToken(t); err != nil {
			// The request can still proceed with the new token.
			s.cfg.Log().Warn("failed to persist refreshed token", zap.Error(err))
			s.cfg.Warnf("failed to save refreshed token: %v", err)
		} else {
			s.last = t.AccessToken
		}
	}
	return t, nil
}

// contextClient returns the HTTP client stored in ctx under oauth2.HTTPClient,
// or http.DefaultClient.
func contextClient(ctx context.Context) *http.Client {
	if hc, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && hc != nil {
		return hc
	}
	return http.DefaultClient
}
