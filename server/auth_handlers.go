package server

import (
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginHandler exchanges email/password for a token pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			writeJSON(w, r, http.StatusBadRequest, false, "Email and password are required", nil)
			return
		}

		pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Login successful", pair)
	}
}

// RefreshHandler consumes a refresh token and returns a new pair.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.RefreshToken == "" {
			writeJSON(w, r, http.StatusBadRequest, false, "Refresh token is required", nil)
			return
		}

		pair, err := s.auth.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Token refreshed", pair)
	}
}

// LogoutHandler revokes every live refresh token of the caller. It always
// reports success, even when no identity could be resolved.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.Logout(r.Context(), BearerToken(r)); err != nil {
			writeError(w, r, err)
			return
		}
		writeSuccess(w, r, http.StatusOK, "Logged out", nil)
	}
}
