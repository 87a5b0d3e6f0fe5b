package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// RefreshMode controls what a caller sees when it needs a refresh while
// another one is already running.
type RefreshMode string

const (
	// RefreshShared makes concurrent callers wait for the running refresh and
	// share its outcome.
	RefreshShared RefreshMode = "shared"
	// RefreshFailFast makes a concurrent caller give up immediately.
	RefreshFailFast RefreshMode = "failfast"
)

func ParseRefreshMode(s string) (RefreshMode, error) {
	switch RefreshMode(strings.ToLower(strings.TrimSpace(s))) {
	case RefreshShared, "":
		return RefreshShared, nil
	case RefreshFailFast, "fail-fast":
		return RefreshFailFast, nil
	default:
		return "", fmt.Errorf("unknown refresh mode %q", s)
	}
}

const refreshPath = "/users/token/refresh"

type refresher interface {
	try(ctx context.Context, staleToken string) bool
}

func newRefresher(mode RefreshMode, c *Client) refresher {
	if mode == RefreshFailFast {
		return &failFastRefresher{refresh: c.refresh}
	}
	return &sharedRefresher{refresh: c.refreshUnlessRotated}
}

type sharedRefresher struct {
	group   singleflight.Group
	refresh func(ctx context.Context, staleToken string) bool
}

func (r *sharedRefresher) try(ctx context.Context, staleToken string) bool {
	v, _, _ := r.group.Do("refresh", func() (any, error) {
		return r.refresh(context.WithoutCancel(ctx), staleToken), nil
	})
	return v.(bool)
}

type failFastRefresher struct {
	inFlight atomic.Bool
	refresh  func(ctx context.Context) bool
}

func (r *failFastRefresher) try(ctx context.Context, _ string) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer r.inFlight.Store(false)
	return r.refresh(context.WithoutCancel(ctx))
}

// TryRefreshToken exchanges the stored refresh token for a new token pair.
// It returns false without a network call when no refresh token is stored.
// A rejected refresh clears the session.
//
// In RefreshFailFast mode a call made while another refresh is running returns
// false at once. In RefreshShared mode it waits and returns that refresh's
// result. Cancelling ctx does not abort a refresh already sent; the
// http.Client timeout bounds it.
func (c *Client) TryRefreshToken(ctx context.Context) bool {
	return c.tryRefresh(ctx, "")
}

// tryRefresh refreshes on behalf of a request that was rejected while carrying
// staleToken ("" when the request carried no stored token).
func (c *Client) tryRefresh(ctx context.Context, staleToken string) bool {
	if c.store.State().RefreshToken == "" {
		return false
	}
	return c.refresher.try(ctx, staleToken)
}

// refreshUnlessRotated skips the network call when another caller has already
// replaced staleToken.
func (c *Client) refreshUnlessRotated(ctx context.Context, staleToken string) bool {
	if staleToken != "" {
		if current := c.store.State().Token; current != "" && current != staleToken {
			c.logger.Debug().Msg("Token already rotated, reusing it")
			return true
		}
	}
	return c.refresh(ctx)
}

func (c *Client) refresh(ctx context.Context) bool {
	refreshToken := c.store.State().RefreshToken
	if refreshToken == "" {
		return false
	}

	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	headers.Set("Refresh-Token", "Bearer "+refreshToken)

	payload, err := c.do(ctx, http.MethodPost, refreshPath, headers, nil)
	if err != nil || !payload.OK() {
		c.logger.Warn().Err(err).Int("status", payload.Status).Msg("Token refresh failed, clearing session")
		c.clear()
		return false
	}

	var tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if payload.IsJSON {
		if err := payload.Data(&tokens); err != nil {
			c.logger.Warn().Err(err).Msg("Token refresh returned an unreadable body, clearing session")
			c.clear()
			return false
		}
	}
	if err := c.store.UpdateTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to persist refreshed tokens")
	}
	c.logger.Info().Msg("Token refreshed")
	return true
}

func (c *Client) clear() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to clear session")
	}
}
