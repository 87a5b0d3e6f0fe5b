package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims are the access token claims the client cares about.
type Claims struct {
	Subject   string
	Email     string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiresIn returns the time left before expiry, or 0 when the token carries
// no expiry.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Inspect reads the claims of an access token without verifying its
// signature. The backend remains the authority; this is only used to show
// the session to the user and to predict expiry.
func Inspect(accessToken string) (*Claims, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("empty token")
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}
	return ClaimsFromMap(mapClaims)
}

// ClaimsFromMap converts parsed JWT claims.
func ClaimsFromMap(mapClaims jwt.MapClaims) (*Claims, error) {
	claims := &Claims{}
	var err error
	if claims.Subject, err = mapClaims.GetSubject(); err != nil {
		return nil, errors.Wrap(err, "invalid sub claim")
	}
	if exp, err := mapClaims.GetExpirationTime(); err != nil {
		return nil, errors.Wrap(err, "invalid exp claim")
	} else if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err != nil {
		return nil, errors.Wrap(err, "invalid iat claim")
	} else if iat != nil {
		claims.IssuedAt = iat.Time
	}
	claims.Email, _ = mapClaims["email"].(string)
	claims.ID, _ = mapClaims["jti"].(string)
	return claims, nil
}
