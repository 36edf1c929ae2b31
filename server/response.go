package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/movies"
)

// AppResponse is the envelope every JSON endpoint replies with.
type AppResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	Code      int    `json:"code"`
}

// PageResponse wraps a page slice with its pagination metadata.
type PageResponse struct {
	Content       any   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

func NewPageResponse(page *movies.Page, content any) PageResponse {
	totalPages := int((page.Total + int64(page.Size) - 1) / int64(page.Size))
	return PageResponse{
		Content:       content,
		PageNumber:    page.Number,
		PageSize:      page.Size,
		TotalElements: page.Total,
		TotalPages:    totalPages,
		First:         page.Number == 1,
		Last:          page.Number >= totalPages,
		HasNext:       page.Number < totalPages,
		HasPrevious:   page.Number > 1,
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, success bool, message string, data any) {
	resp := AppResponse{
		Success:   success,
		Message:   message,
		Data:      data,
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Code:      status,
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	writeJSON(w, r, status, true, message, data)
}

// writeError maps the application error taxonomy onto HTTP status codes and
// emits the failure envelope. Unknown errors are logged and become a 500
// without leaking detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, apperr.ErrInvalidCredentials):
		writeJSON(w, r, http.StatusUnauthorized, false, "Invalid credentials", nil)
	case stderrors.Is(err, apperr.ErrUnauthenticated):
		writeJSON(w, r, http.StatusUnauthorized, false, "Authentication required", nil)
	case stderrors.Is(err, apperr.ErrNotFound), stderrors.Is(err, apperr.ErrUserNotFound):
		writeJSON(w, r, http.StatusNotFound, false, "Resource not found", nil)
	case stderrors.Is(err, apperr.ErrConflict):
		writeJSON(w, r, http.StatusConflict, false, "Resource already exists", nil)
	case stderrors.Is(err, apperr.ErrInvalidArgument):
		writeJSON(w, r, http.StatusBadRequest, false, err.Error(), nil)
	case stderrors.Is(err, apperr.ErrExternalAPI):
		writeJSON(w, r, http.StatusBadGateway, false, "Upstream catalog unavailable", nil)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, r, http.StatusInternalServerError, false, "Internal server error", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, r, http.StatusBadRequest, false, "Malformed request body", nil)
		return false
	}
	return true
}
