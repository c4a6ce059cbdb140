package server

import (
	"errors"
	"net/http"
	"time"

	"connectplus/pkg/types"
)

type sessionResponse struct {
	User      *types.Identity `json:"user"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid login payload")
		return
	}

	identity, err := s.gate.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			s.logger.Info("rejected login attempt")
			s.writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.internalServerError(w, err, "Login failed")
		return
	}

	accessToken, expiresAt, err := s.issuer.Issue(identity)
	if err != nil {
		s.internalServerError(w, err, "Login failed")
		return
	}

	encryptedToken, err := s.cookie.Encode(s.config.CookieName, accessToken)
	if err != nil {
		s.internalServerError(w, err, "Login failed")
		return
	}

	s.setSessionCookie(w, encryptedToken, time.Until(expiresAt))

	s.logger.WithField("user_id", identity.ID).Info("user logged in")

	s.writeJSON(w, http.StatusOK, &sessionResponse{
		User:      identity,
		Token:     accessToken,
		ExpiresAt: &expiresAt,
	})
}

func (s *Service) handlePostLogout(w http.ResponseWriter, _ *http.Request) {
	s.clearSessionCookie(w)
	s.writeSuccess(w)
}

func (s *Service) handleGetSession(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "You must be signed in to access this endpoint")
		return
	}

	s.writeJSON(w, http.StatusOK, &sessionResponse{User: identity})
}

func (s *Service) setSessionCookie(w http.ResponseWriter, value string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    value,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
