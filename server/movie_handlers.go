package server

import (
	"net/http"
	"strconv"
	"strings"
)

type importRequest struct {
	ImdbIDs []string `json:"imdbIds"`
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// ListMoviesHandler returns a page of the local catalog, optionally filtered
// by a title substring.
func (s *Server) ListMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		page, err := s.movies.List(r.Context(), search, queryInt(r, "page", 1), queryInt(r, "size", 20))
		if err != nil {
			writeError(w, r, err)
			return
		}

		summaries := make([]any, 0, len(page.Movies))
		for _, m := range page.Movies {
			summaries = append(summaries, m.Summary())
		}
		writeSuccess(w, r, http.StatusOK, "Movies retrieved", NewPageResponse(page, summaries))
	}
}

// GetMovieHandler returns the full detail of one stored movie.
func (s *Server) GetMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movie, err := s.movies.Get(r.Context(), r.PathValue("imdbID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Movie retrieved", movie)
	}
}

// SearchCatalogHandler proxies a search against the external catalog.
func (s *Server) SearchCatalogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			writeJSON(w, r, http.StatusBadRequest, false, "Query parameter 'query' is required", nil)
			return
		}
		result, err := s.movies.SearchCatalog(r.Context(), query, queryInt(r, "page", 1))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Catalog searched", result)
	}
}

// ImportMoviesHandler pulls the named titles from the external catalog into
// the local one, reporting a per-id outcome.
func (s *Server) ImportMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.ImdbIDs) == 0 {
			writeJSON(w, r, http.StatusBadRequest, false, "At least one imdbId is required", nil)
			return
		}

		results, err := s.movies.Import(r.Context(), req.ImdbIDs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Import completed", results)
	}
}

// DeleteMovieHandler removes one movie and its ratings.
func (s *Server) DeleteMovieHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.movies.Delete(r.Context(), r.PathValue("imdbID")); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Movie deleted", nil)
	}
}

// DeleteMoviesHandler removes every movie named in the comma-separated ids
// query parameter. Unknown ids are skipped, not errors.
func (s *Server) DeleteMoviesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("ids")
		if raw == "" {
			writeJSON(w, r, http.StatusBadRequest, false, "Query parameter 'ids' is required", nil)
			return
		}
		var ids []string
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}

		deleted, err := s.movies.DeleteBatch(r.Context(), ids)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Movies deleted", map[string]int64{"deleted": deleted})
	}
}
