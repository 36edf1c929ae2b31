package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/users"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateUserHandler creates a new account. Admin only.
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Email == "" || req.Username == "" {
			writeJSON(w, r, http.StatusBadRequest, false, "Email and username are required", nil)
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeJSON(w, r, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		role, err := users.ParseRole(req.Role)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, false, "Role must be ADMIN or USER", nil)
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		user := &users.User{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: hash,
			Role:         role,
		}
		if err := s.users.Create(r.Context(), user); err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
		writeSuccess(w, r, http.StatusCreated, "User created", userResponse{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Role:     string(user.Role),
		})
	}
}
