package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyClaims stores parsed token claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireAuth is middleware that validates a Bearer access token. An expired
// token is answered with token_expired so clients know to refresh.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := s.authenticate(r)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, authFailureMessage(err))
				return
			}
			next(w, r.WithContext(withClaims(r.Context(), claims)))
		}
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and otherwise serves the request anonymously.
func (s *Server) OptionalAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next(w, r)
				return
			}
			claims, err := s.authenticate(r)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, authFailureMessage(err))
				return
			}
			next(w, r.WithContext(withClaims(r.Context(), claims)))
		}
	}
}

var errMissingBearer = errors.New("missing bearer token")

func (s *Server) authenticate(r *http.Request) (*token.Claims, error) {
	raw, ok := bearer(r.Header.Get("Authorization"))
	if !ok {
		return nil, errMissingBearer
	}
	return s.tokens.Verify(raw)
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, truedeverrors.ErrTokenExpired):
		return MessageTokenExpired
	case errors.Is(err, errMissingBearer):
		return MessageUnauthorized
	default:
		return MessageInvalidToken
	}
}

// bearer extracts the token from an "Authorization: Bearer <token>" style value.
func bearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func withClaims(ctx context.Context, claims *token.Claims) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, claims.Subject)
	return context.WithValue(ctx, ContextKeyClaims, claims)
}

// userID returns the authenticated user, or "" for an anonymous request.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyUserID).(string)
	return id
}
