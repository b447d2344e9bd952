// Package identity resolves an inbound request to a stable user identifier.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"participation-tracker/internal/biddingerrors"
)

//go:generate mockgen -source=identity.go -destination=mock_identity.go -package=identity

// UserIDKey is the gin context key holding the resolved user ID
const UserIDKey = "user_id"

// Header and cookie names carrying credentials
const (
	AuthorizationHeader = "Authorization"
	SessionCookie       = "session_token"
	UserIDHeader        = "X-User-ID"
)

// Resolver maps a request to a user ID or fails with ErrUnauthenticated
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// SessionResolver looks up bearer tokens or session cookies in a SessionStore
type SessionResolver struct {
	sessions SessionStore
}

// NewSessionResolver creates a SessionResolver
func NewSessionResolver(sessions SessionStore) *SessionResolver {
	return &SessionResolver{sessions: sessions}
}

// Resolve returns the user owning the request's session token
func (s *SessionResolver) Resolve(r *http.Request) (string, error) {
	token := sessionToken(r)
	if token == "" {
		return "", fmt.Errorf("identity: %w - missing session token", biddingerrors.ErrUnauthenticated)
	}

	userID, err := s.sessions.UserForSession(r.Context(), token)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrSessionNotFound) {
			return "", fmt.Errorf("identity: %w - %w", biddingerrors.ErrUnauthenticated, err)
		}
		return "", fmt.Errorf("identity: failed to resolve session: %w", err)
	}
	if userID == "" {
		return "", fmt.Errorf("identity: %w - session without user", biddingerrors.ErrUnauthenticated)
	}
	return userID, nil
}

// HeaderResolver trusts the X-User-ID header. Meant for local runs behind a
// gateway that has already authenticated the caller.
type HeaderResolver struct{}

// Resolve returns the X-User-ID header value
func (HeaderResolver) Resolve(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if userID == "" {
		return "", fmt.Errorf("identity: %w - missing %s header", biddingerrors.ErrUnauthenticated, UserIDHeader)
	}
	return userID, nil
}

// sessionToken prefers a bearer token over the session cookie
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get(AuthorizationHeader); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
