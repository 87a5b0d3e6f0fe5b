package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/token"
	"github.com/jrsteele09/truedev-client/users"
)

// Creator issues and verifies the dev backend's access tokens.
type Creator struct {
	signer  token.Signer
	expiry  time.Duration
	nowFunc func() time.Time
}

type CreatorOption func(*Creator)

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(now func() time.Time) CreatorOption {
	return func(c *Creator) {
		c.nowFunc = now
	}
}

func NewCreator(signer token.Signer, expiry time.Duration, options ...CreatorOption) *Creator {
	c := &Creator{
		signer:  signer,
		expiry:  expiry,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// CreateAccessToken creates a signed access token for user.
func (c *Creator) CreateAccessToken(user *users.User) (string, error) {
	now := c.nowFunc()
	claims := jwtlib.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.expiry).Unix(),
		"jti":   uuid.New().String(),
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of rawToken. An expired token
// returns ErrTokenExpired; anything else wrong returns ErrInvalidToken.
func (c *Creator) Verify(rawToken string) (*token.Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, c.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(c.nowFunc),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, truedeverrors.ErrTokenExpired
		}
		return nil, truedeverrors.Wrapf(truedeverrors.ErrInvalidToken, "%v", err)
	}
	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return nil, truedeverrors.ErrInvalidToken
	}
	return token.ClaimsFromMap(mapClaims)
}
