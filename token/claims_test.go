package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/jrsteele09/truedev-client/sessions/repofakes"
	"github.com/jrsteele09/truedev-client/token"
	"github.com/jrsteele09/truedev-client/users"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	signer, err := token.NewHMACSigner("secret")
	require.NoError(t, err)
	raw, err := signer.Sign(claims)
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{
		"sub":   "user-1",
		"email": "lucas@truedev.io",
		"iat":   issued.Unix(),
		"exp":   issued.Add(15 * time.Minute).Unix(),
		"jti":   "abc",
	})

	claims, err := token.Inspect(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "lucas@truedev.io", claims.Email)
	require.Equal(t, "abc", claims.ID)
	require.True(t, claims.IssuedAt.Equal(issued))
	require.Equal(t, 5*time.Minute, claims.ExpiresIn(issued.Add(10*time.Minute)))
	require.False(t, claims.Expired(issued))
	require.True(t, claims.Expired(issued.Add(15*time.Minute)))
}

func TestInspect_Invalid(t *testing.T) {
	_, err := token.Inspect("")
	require.Error(t, err)

	_, err = token.Inspect("not-a-jwt")
	require.Error(t, err)
}

func TestInspect_NoExpiry(t *testing.T) {
	claims, err := token.Inspect(signedToken(t, jwtlib.MapClaims{"sub": "user-1"}))
	require.NoError(t, err)
	require.Zero(t, claims.ExpiresIn(time.Now()))
	require.False(t, claims.Expired(time.Now()))
}

func TestHMACSigner_EmptySecret(t *testing.T) {
	signer, err := token.NewHMACSigner("")
	require.Error(t, err)
	require.Nil(t, signer)
}

func TestSessionTokenSource(t *testing.T) {
	store, err := sessions.New(repofakes.NewFakeKVRepo())
	require.NoError(t, err)
	source := token.NewSessionTokenSource(store)

	_, err = source.Token()
	require.ErrorIs(t, err, token.ErrNoSession)

	exp := issued.Add(time.Hour)
	raw := signedToken(t, jwtlib.MapClaims{"sub": "user-1", "exp": exp.Unix()})
	require.NoError(t, store.SetAuth(sessions.AuthState{
		Token:        raw,
		RefreshToken: "r1",
		User:         &users.UserProfile{UserName: "lucas"},
	}))

	tok, err := source.Token()
	require.NoError(t, err)
	require.Equal(t, raw, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, "r1", tok.RefreshToken)
	require.True(t, tok.Expiry.Equal(exp))

	require.NoError(t, store.UpdateTokens("opaque", ""))
	tok, err = source.Token()
	require.NoError(t, err)
	require.Equal(t, "opaque", tok.AccessToken)
	require.True(t, tok.Expiry.IsZero())
}
