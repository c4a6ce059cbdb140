package server

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"connectplus/internal/auth"
	"connectplus/pkg/types"
)

var emailReg = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateNewUser returns the first problem with a create request, or "".
func validateNewUser(email, password string) string {
	if email == "" || password == "" {
		return "Email and password are required"
	}

	if !emailReg.MatchString(email) {
		return "Invalid email format"
	}

	if auth.PasswordTooShort(password) {
		return "Password must be at least 8 characters"
	}

	return ""
}

func (s *Service) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userRepo.Users(r.Context())
	if err != nil {
		s.internalServerError(w, err, "Failed to list users")
		return
	}

	s.writeJSON(w, http.StatusOK, users)
}

func (s *Service) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := s.userRepo.User(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.internalServerError(w, err, "Failed to fetch user")
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

func (s *Service) handlePostUser(w http.ResponseWriter, r *http.Request) {
	var input newUser
	if err := decodeJSON(w, r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input.Email = strings.TrimSpace(input.Email)
	if msg := validateNewUser(input.Email, input.Password); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := s.gate.Register(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, types.ErrUserExists) {
			s.writeError(w, http.StatusConflict, "User already exists or could not be created")
			return
		}
		s.internalServerError(w, err, "Failed to create user")
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user created")

	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Service) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input passwordChange
	if err := decodeJSON(w, r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if input.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Password is required")
		return
	}
	if auth.PasswordTooShort(input.Password) {
		s.writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	if err := s.gate.ChangePassword(r.Context(), id, input.Password); err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.internalServerError(w, err, "Failed to update user password")
		return
	}

	s.writeSuccess(w)
}

func (s *Service) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "You must be signed in to access this endpoint")
		return
	}

	if identity.ID == id {
		s.writeError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	deleted, err := s.userRepo.DeleteUser(r.Context(), id)
	if err != nil {
		s.internalServerError(w, err, "Failed to delete user")
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}

	s.writeSuccess(w)
}
