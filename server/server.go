package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/filmvault/movie-server/auth"
	"github.com/filmvault/movie-server/internal/config"
	"github.com/filmvault/movie-server/movies"
	"github.com/filmvault/movie-server/ratings"
	"github.com/filmvault/movie-server/token"
	"github.com/filmvault/movie-server/users"
)

// Repos bundles the persistence dependencies the server needs.
type Repos struct {
	Users   users.UserRepo
	Tokens  token.Store
	Movies  movies.Repo
	Ratings ratings.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config

	auth    *auth.Service
	users   users.UserRepo
	movies  *movies.Service
	ratings *ratings.Service
}

func New(config config.Config, repos Repos, catalog movies.Catalog) (*Server, error) {
	secret, err := config.GetJWTSecret()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load JWT secret: %w", err)
	}
	codec := token.NewCodec(
		token.NewHMACSigner(secret),
		token.WithClockSkew(config.GetClockSkew()),
	)
	authService, err := auth.NewService(
		auth.Repos{Users: repos.Users, Tokens: repos.Tokens},
		codec,
		auth.WithTokenTTLs(config.GetAccessTokenTTL(), config.GetRefreshTokenTTL()),
	)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	movieService, err := movies.NewService(repos.Movies, catalog)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create movie service: %w", err)
	}
	ratingService, err := ratings.NewService(repos.Ratings, repos.Movies)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create rating service: %w", err)
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  config,
		auth:    authService,
		users:   repos.Users,
		movies:  movieService,
		ratings: ratingService,
	}
	s.env = config.GetEnv()

	// Bootstrap: ensure the initial admin account exists
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.InitialiseSystem(ctx, config); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise the system: %w", err)
	}

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
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
