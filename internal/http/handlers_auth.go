package http

import (
	"net/http"

	"budget/internal/log"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Registration failed",
			log.FieldOperation, log.OpRegister,
			log.FieldError, err.Error())
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token:  res.Token,
		UserID: res.Identity.UserID,
		Email:  res.Identity.Email,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:  res.Token,
		UserID: res.Identity.UserID,
		Email:  res.Identity.Email,
	})
}
