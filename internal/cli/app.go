package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/truedev-client/api"
	"github.com/jrsteele09/truedev-client/client"
	"github.com/jrsteele09/truedev-client/internal/config"
	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/jrsteele09/truedev-client/sessions/filerepo"
	"github.com/jrsteele09/truedev-client/sessions/redisrepo"
	"github.com/jrsteele09/truedev-client/sessions/repofakes"
	"github.com/rs/zerolog"
)

// app is everything a command needs, built once per invocation.
type app struct {
	config config.Config
	logger zerolog.Logger
	store  *sessions.Store
	api    *api.API
	close  func() error
}

func newApp(ctx context.Context, configPath string, verbose bool, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.GetLogLevel(), verbose, stderr)

	repo, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := sessions.New(repo, sessions.WithLogger(logger))
	if err != nil {
		_ = closeRepo()
		return nil, err
	}

	mode, err := client.ParseRefreshMode(cfg.GetRefreshMode())
	if err != nil {
		_ = closeRepo()
		return nil, err
	}
	c := client.New(cfg.GetBaseURL(), store,
		client.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
		client.WithLogger(logger),
		client.WithRefreshMode(mode),
	)

	a := &app{
		config: cfg,
		logger: logger,
		store:  store,
		api:    api.New(c, store, api.WithLogger(logger)),
		close:  closeRepo,
	}
	store.SubscribeUnauthorized(func() {
		if err := store.Clear(); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear session")
		}
		fmt.Fprintln(stderr, "Your session has expired. Please log in again.")
	})
	return a, nil
}

func newLogger(level string, verbose bool, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
}

// openRepo picks the session persistence backend named in the config.
func openRepo(ctx context.Context, cfg config.StorageConfig) (sessions.Repo, func() error, error) {
	noop := func() error { return nil }
	switch cfg.GetStorageBackend() {
	case config.StorageMemory:
		return repofakes.NewFakeKVRepo(), noop, nil
	case config.StorageRedis:
		repo, err := redisrepo.Dial(ctx, cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB(), cfg.GetRedisPrefix())
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.StorageFile:
		return filerepo.New(cfg.GetStoragePath()), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q (want %s, %s or %s)",
			cfg.GetStorageBackend(), config.StorageFile, config.StorageMemory, config.StorageRedis)
	}
}

func (a *app) requireLogin() error {
	if !a.store.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}
