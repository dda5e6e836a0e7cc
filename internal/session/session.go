// Package session keeps the bearer credential issued by /auth/login
// across runs. The token is display-decoded only; signature
// verification stays on the server.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore persists the credential between runs.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	DeleteToken(ctx context.Context) error
}

// Identity is what the token's claims reveal about the signed-in user.
type Identity struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session implements the API client's TokenSource over a TokenStore.
// An expired token reads as no token at all.
type Session struct {
	mu    sync.Mutex
	store TokenStore
	token string
	now   func() time.Time
}

// Open loads any persisted token into a new session.
func Open(ctx context.Context, store TokenStore) (*Session, error) {
	token, err := store.LoadToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Session{store: store, token: token, now: time.Now}, nil
}

// Token returns the current bearer token, or "" when absent or expired.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return ""
	}
	if id, ok := decode(s.token); ok && !id.ExpiresAt.IsZero() && id.ExpiresAt.Before(s.now()) {
		return ""
	}
	return s.token
}

// Clear drops the token in memory and in the store. Called by the API
// client on any 401.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	store := s.store
	s.mu.Unlock()

	if err := store.DeleteToken(context.Background()); err != nil {
		slog.Warn("Failed to remove persisted session", "error", err)
	}
}

// Store persists a freshly issued token.
func (s *Session) Store(ctx context.Context, token string) error {
	if err := s.store.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Identity decodes the current token's claims. Second return is false
// when no usable token is held.
func (s *Session) Identity() (Identity, bool) {
	token := s.Token()
	if token == "" {
		return Identity{}, false
	}
	return decode(token)
}

func decode(token string) (Identity, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}, false
	}

	var id Identity
	if sub, err := claims.GetSubject(); err == nil {
		id.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		id.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, true
}
