package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"task-management/internal/domain"
	apperrors "task-management/internal/errors"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := s.users.Register(r.Context(), domain.UserRegistration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(*user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	session, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toAuthResponse(*session))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	changed, err := s.users.ChangePassword(r.Context(), ownerID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(w, err)
		return
	}
	if !changed {
		respondError(w, apperrors.NewUnauthenticatedError())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	user, err := s.users.GetByID(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(*user))
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewInvalidTokenError("no claims in context", nil))
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := s.users.Update(r.Context(), ownerID, domain.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(*user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, apperrors.NewInvalidInputError("id", raw, "must be a positive integer"))
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(*user))
}
