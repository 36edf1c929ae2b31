package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthLogin   = "/auth/login"
	RouteAuthRefresh = "/auth/refresh"
	RouteAuthLogout  = "/auth/logout"

	// User Routes
	RouteUsers = "/users"

	// Movie Routes
	RouteMovies             = "/movies"
	RouteMovieByID          = "/movies/{imdbID}"
	RouteMovieImport        = "/movies/import"
	RouteMovieCatalogSearch = "/movies/catalog/search"

	// Rating Routes
	RouteMovieRating        = "/movies/{imdbID}/rating"
	RouteMovieRatingSummary = "/movies/{imdbID}/rating/summary"

	// Operational Routes
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)
