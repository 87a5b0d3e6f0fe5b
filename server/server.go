package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/truedev-client/internal/config"
	"github.com/jrsteele09/truedev-client/server/boardrepo"
	"github.com/jrsteele09/truedev-client/token"
	"github.com/jrsteele09/truedev-client/token/jwt"
	"github.com/jrsteele09/truedev-client/token/refresh"
	refreshrepofake "github.com/jrsteele09/truedev-client/token/refresh/repofake"
	"github.com/jrsteele09/truedev-client/users"
	fakeuserrepo "github.com/jrsteele09/truedev-client/users/repofake"
	"github.com/rs/zerolog/log"
)

// Repos are the stores behind the development backend.
type Repos struct {
	Users   users.UserRepo
	Refresh refresh.Repo
	Board   boardrepo.Repo
}

// NewInMemoryRepos returns empty in-memory stores.
func NewInMemoryRepos() Repos {
	return Repos{
		Users:   fakeuserrepo.NewFakeUserRepo(),
		Refresh: refreshrepofake.NewFakeRefreshTokenRepo(),
		Board:   boardrepo.NewInMemoryRepo(),
	}
}

// Server is a development backend speaking the TrueDev wire contract.
type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	repos    Repos
	tokens   *jwt.Creator
	refresh  *refresh.Manager
	images   *imageStore
	pageSize int

	tokenOptions []jwt.CreatorOption
}

type Option func(*Server)

// WithTokenOptions passes options to the access token creator, for example
// a fixed clock in tests.
func WithTokenOptions(options ...jwt.CreatorOption) Option {
	return func(s *Server) {
		s.tokenOptions = append(s.tokenOptions, options...)
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	signer, err := token.NewHMACSigner(cfg.GetJWTSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create signer: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		repos:    repos,
		refresh:  refresh.NewManager(repos.Refresh, cfg.GetRefreshTokenExpiry()),
		images:   newImageStore(),
		pageSize: cfg.GetPageSize(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.tokens = jwt.NewCreator(signer, cfg.GetAccessTokenExpiry(), s.tokenOptions...)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func logError(method, path string, err error) {
	log.Error().Msgf("[%-19s] %s %s", colouredMethod(method), path, Red+err.Error()+ResetColor)
}
