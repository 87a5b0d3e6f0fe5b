package token

import (
	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// ErrNoSession is returned by the session token source when nobody is logged in.
var ErrNoSession = errors.New("no session token")

var _ oauth2.TokenSource = (*SessionTokenSource)(nil)

// SessionTokenSource exposes the stored session as an oauth2.TokenSource so
// other HTTP clients (oauth2.NewClient) can reuse the TrueDev bearer token.
// It never refreshes; the session client owns refresh.
type SessionTokenSource struct {
	store *sessions.Store
}

func NewSessionTokenSource(store *sessions.Store) *SessionTokenSource {
	return &SessionTokenSource{store: store}
}

func (s *SessionTokenSource) Token() (*oauth2.Token, error) {
	state := s.store.State()
	if state.Token == "" {
		return nil, ErrNoSession
	}
	tok := &oauth2.Token{
		AccessToken:  state.Token,
		TokenType:    "Bearer",
		RefreshToken: state.RefreshToken,
	}
	// Opaque tokens have no readable expiry and are treated as non-expiring.
	if claims, err := Inspect(state.Token); err == nil {
		tok.Expiry = claims.ExpiresAt
	}
	return tok, nil
}
