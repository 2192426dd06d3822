package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"zenumljpg/src/domain"
)

func (s *Server) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	out, err := s.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			http.Error(w, domain.ErrEmailTaken.Error(), http.StatusConflict)
			return
		}

		s.logger.Error("Failed to register user", "username", req.Username, "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MapRegisterToResponse(out))
}

func (s *Server) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req LoginUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, domain.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}

		s.logger.Error("Failed to login user", "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MapLoginToResponse(out))
}
