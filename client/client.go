package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/rs/zerolog"
)

// RequestOptions describes one call to the backend.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is either a JSONBody or a *Multipart. Nil sends no body.
	Body    Body
	Headers http.Header
	// SuppressUnauthorizedEvent disables the refresh/broadcast path for a 401.
	// Login sets it so a bad password is never mistaken for an expired session.
	SuppressUnauthorizedEvent bool
}

// Client is the authenticated HTTP session client. Every backend call goes
// through Request, which attaches the bearer token, refreshes once on 401 and
// tells the session store when the session can no longer be recovered.
type Client struct {
	baseURL   string
	http      *http.Client
	store     *sessions.Store
	logger    zerolog.Logger
	mode      RefreshMode
	refresher refresher
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRefreshMode selects how concurrent 401s share a token refresh.
func WithRefreshMode(mode RefreshMode) Option {
	return func(c *Client) {
		c.mode = mode
	}
}

// New creates a Client for the backend at baseURL using store as the session.
func New(baseURL string, store *sessions.Store, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		store:   store,
		logger:  zerolog.Nop(),
		mode:    RefreshShared,
	}
	for _, opt := range options {
		opt(c)
	}
	c.refresher = newRefresher(c.mode, c)
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Store() *sessions.Store {
	return c.store
}

// Request performs one call against path and returns the payload of a 2xx
// response. A non-2xx response returns *RequestError; a transport failure
// returns *ConnectivityError.
//
// On a 401 that is not invalid_credentials the token is refreshed and the call
// retried exactly once with the new token. The retry's outcome is returned as
// is. If the refresh fails the unauthorized broadcast fires and the original
// error is returned.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (Payload, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := make(http.Header)
	for k, v := range opts.Headers {
		headers[k] = append([]string(nil), v...)
	}

	var body []byte
	if opts.Body != nil {
		contentType, data, err := opts.Body.encode()
		if err != nil {
			return Payload{}, fmt.Errorf("[client Request] %s %s: %w", method, path, err)
		}
		body = data
		if opts.Body.isMultipart() || headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", contentType)
		}
	}
	if headers.Get("Accept") == "" {
		headers.Set("Accept", "application/json")
	}

	sentToken := ""
	if token := c.store.State().Token; token != "" && headers.Get("Authorization") == "" {
		headers.Set("Authorization", "Bearer "+token)
		sentToken = token
	}

	payload, err := c.do(ctx, method, path, headers, body)
	if err != nil {
		return Payload{}, err
	}
	if payload.OK() {
		return payload, nil
	}

	reqErr := newRequestError(payload)
	if payload.Status != http.StatusUnauthorized || reqErr.Message == MessageInvalidCredentials || opts.SuppressUnauthorizedEvent {
		return Payload{}, reqErr
	}

	if c.tryRefresh(ctx, sentToken) {
		retryHeaders := headers.Clone()
		retryHeaders.Set("Authorization", "Bearer "+c.store.State().Token)
		retry, err := c.do(ctx, method, path, retryHeaders, body)
		if err != nil {
			return Payload{}, err
		}
		if retry.OK() {
			return retry, nil
		}
		return Payload{}, newRequestError(retry)
	}

	c.logger.Warn().Str("method", method).Str("path", path).Msg("Session expired, broadcasting unauthorized")
	c.store.EmitUnauthorized()
	return Payload{}, reqErr
}

// do issues a single HTTP call and reads the whole body.
func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body []byte) (Payload, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Payload{}, fmt.Errorf("[client do] failed to build request: %w", err)
	}
	req.Header = headers

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Payload{}, ctxErr
		}
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("Transport failure")
		return Payload{}, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, &ConnectivityError{Err: err}
	}
	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("Request")
	return newPayload(resp, raw)
}
