package server

import (
	"net/http"

	"github.com/filmvault/movie-server/users"
)

func (s *Server) initRoutes() {
	api := func(h http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, s.APIMiddleware(mw...)...)
	}

	// AUTH
	s.RegisterRouteFunc("POST "+RouteAuthLogin, api(s.LoginHandler()))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, api(s.RefreshHandler()))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, api(s.LogoutHandler()))

	// USERS
	s.RegisterRouteFunc("POST "+RouteUsers, api(s.CreateUserHandler(), s.RequirePermission(users.PermUsersManage)))

	// MOVIES
	s.RegisterRouteFunc("GET "+RouteMovies, api(s.ListMoviesHandler(), s.RequirePermission(users.PermMoviesRead)))
	s.RegisterRouteFunc("GET "+RouteMovieByID, api(s.GetMovieHandler(), s.RequirePermission(users.PermMoviesRead)))
	s.RegisterRouteFunc("GET "+RouteMovieCatalogSearch, api(s.SearchCatalogHandler(), s.RequirePermission(users.PermMoviesManage)))
	s.RegisterRouteFunc("POST "+RouteMovieImport, api(s.ImportMoviesHandler(), s.RequirePermission(users.PermMoviesManage)))
	s.RegisterRouteFunc("DELETE "+RouteMovieByID, api(s.DeleteMovieHandler(), s.RequirePermission(users.PermMoviesManage)))
	s.RegisterRouteFunc("DELETE "+RouteMovies, api(s.DeleteMoviesHandler(), s.RequirePermission(users.PermMoviesManage)))

	// RATINGS
	s.RegisterRouteFunc("PUT "+RouteMovieRating, api(s.RateMovieHandler(), s.RequirePermission(users.PermRatingsWrite)))
	s.RegisterRouteFunc("GET "+RouteMovieRating, api(s.MyRatingHandler(), s.RequireAuth))
	s.RegisterRouteFunc("GET "+RouteMovieRatingSummary, api(s.RatingSummaryHandler(), s.RequirePermission(users.PermMoviesRead)))
	s.RegisterRouteFunc("DELETE "+RouteMovieRating, api(s.DeleteMyRatingHandler(), s.RequirePermission(users.PermRatingsWrite)))

	// OPERATIONAL
	s.RegisterRouteFunc("GET "+RouteHealthz, api(s.HealthzHandler()))
	s.RegisterRouteFunc("GET "+RouteMetrics, api(s.MetricsHandler()))
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
