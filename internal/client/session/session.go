// Package session holds the single process-wide answer to "who is logged
// in". The Session is an explicitly constructed, injectable object: every
// consumer receives it as a dependency, there is no package-level singleton.
//
// States are Anonymous and Authenticated. Anonymous → Authenticated on a
// successful Login or Restore; Authenticated → Anonymous on Logout, on a
// failed Restore, or when any API call answers with an authentication
// failure (see Invalidate). The access token is additionally persisted in a
// durable single-slot store so a session survives CLI restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/itemdesk/internal/client/api"
	"github.com/dmitrijs2005/itemdesk/internal/client/repositories/state"
	"github.com/dmitrijs2005/itemdesk/internal/logging"
	"github.com/dmitrijs2005/itemdesk/internal/models"
)

// tokenKey names the durable slot holding the access token.
const tokenKey = "access_token"

// ErrNotAuthenticated is returned by operations that require a session while
// none is established.
var ErrNotAuthenticated = errors.New("not authenticated")

// API is the subset of the backend client the session depends on.
type API interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	Register(ctx context.Context, in models.UserCreate) (models.User, error)
	CurrentUser(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, token string, upd models.UserUpdate) (models.User, error)
}

type Session struct {
	api   API
	state state.Repository
	log   logging.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
}

func New(api API, repo state.Repository, log logging.Logger) *Session {
	return &Session{api: api, state: repo, log: log}
}

// Login exchanges credentials for a token, persists the token, then fetches
// and caches the current user. On any failure the session stays Anonymous
// and no partial token is left behind, in memory or on disk.
func (s *Session) Login(ctx context.Context, email, password string) error {
	tok, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.state.Set(ctx, tokenKey, []byte(tok.AccessToken)); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}

	user, err := s.api.CurrentUser(ctx, tok.AccessToken)
	if err != nil {
		if derr := s.state.Delete(ctx, tokenKey); derr != nil {
			s.log.Warn(ctx, "failed to remove persisted token", "error", derr)
		}
		return err
	}

	s.mu.Lock()
	s.token = tok.AccessToken
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Register creates an account. It deliberately does not establish a
// session; the caller must log in afterwards. This mirrors the backend's
// registration flow, which returns the created user rather than a token.
func (s *Session) Register(ctx context.Context, email, password string, fullName *string) (models.User, error) {
	return s.api.Register(ctx, models.UserCreate{Email: email, Password: password, FullName: fullName})
}

// Logout clears the session from memory and from durable storage. Calling
// it while already Anonymous is a no-op.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	return s.state.Delete(ctx, tokenKey)
}

// Restore is the sole recovery path for a persisted token: it reads the
// durable slot and validates the token by fetching the current user. A
// token the backend rejects is removed and the session stays Anonymous
// (nil error). A transport failure leaves the stored token in place and is
// returned, so a flaky network never logs the user out.
func (s *Session) Restore(ctx context.Context) error {
	raw, err := s.state.Get(ctx, tokenKey)
	if err != nil {
		return fmt.Errorf("reading persisted token: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	token := string(raw)
	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.log.Info(ctx, "persisted token rejected, clearing it")
			if derr := s.state.Delete(ctx, tokenKey); derr != nil {
				s.log.Warn(ctx, "failed to remove persisted token", "error", derr)
			}
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// UpdateProfile applies a partial profile update and refreshes the cached
// user. An authentication failure invalidates the session.
func (s *Session) UpdateProfile(ctx context.Context, upd models.UserUpdate) (models.User, error) {
	token := s.Token()
	if token == "" {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := s.api.UpdateProfile(ctx, token, upd)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.Invalidate(ctx)
		}
		return models.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

// Invalidate drops the session after the backend refused the token. Unlike
// Logout it is called on behalf of failed API calls, not by the user.
func (s *Session) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.state.Delete(ctx, tokenKey); err != nil {
		s.log.Warn(ctx, "failed to remove persisted token", "error", err)
	}
}

// Token returns the current access token, or "" when Anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the cached user, or nil when Anonymous.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
