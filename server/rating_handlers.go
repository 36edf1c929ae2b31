package server

import (
	"net/http"

	"github.com/filmvault/movie-server/auth"
)

type rateRequest struct {
	Score int `json:"score"`
}

// RateMovieHandler records or updates the caller's star rating.
func (s *Server) RateMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())

		var req rateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		summary, err := s.ratings.Rate(r.Context(), principal.User.ID, r.PathValue("imdbID"), req.Score)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Rating saved", summary)
	}
}

// MyRatingHandler returns the movie's summary including the caller's score.
func (s *Server) MyRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())

		summary, err := s.ratings.MyRating(r.Context(), principal.User.ID, r.PathValue("imdbID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Rating retrieved", summary)
	}
}

// RatingSummaryHandler returns the movie's aggregate rating. Open to any
// authenticated caller and carries no personal score.
func (s *Server) RatingSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := s.ratings.MovieSummary(r.Context(), r.PathValue("imdbID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Rating summary retrieved", summary)
	}
}

// DeleteMyRatingHandler removes the caller's rating and returns the new
// aggregate.
func (s *Server) DeleteMyRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())

		summary, err := s.ratings.DeleteMyRating(r.Context(), principal.User.ID, r.PathValue("imdbID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Rating removed", summary)
	}
}
