package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"connectplus/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyEmail  contextKey = "email"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the session token, taken from the encrypted session
// cookie or a bearer Authorization header, and adds the user to the context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := s.sessionToken(r)
		if !ok {
			s.writeError(w, http.StatusUnauthorized, "You must be signed in to access this endpoint")
			return
		}

		identity, err := s.issuer.Verify(accessToken)
		if err != nil {
			s.logger.WithError(err).Debug("rejected session token")
			s.writeError(w, http.StatusUnauthorized, "You must be signed in to access this endpoint")
			return
		}

		// the account may have been deleted since the token was issued
		if _, err := s.userRepo.User(r.Context(), identity.ID); err != nil {
			if !errors.Is(err, types.ErrUserNotFound) {
				s.internalServerError(w, err, "Failed to verify session")
				return
			}
			s.logger.WithField("user_id", identity.ID).Debug("session for deleted user")
			s.writeError(w, http.StatusUnauthorized, "You must be signed in to access this endpoint")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyUserID, identity.ID)
		if identity.Email != "" {
			ctx = context.WithValue(ctx, contextKeyEmail, identity.Email)
		}

		s.logger.WithFields(logrus.Fields{
			"user_id": identity.ID,
			"email":   identity.Email,
		}).Debug("authenticated user")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) sessionToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		return token, found && token != ""
	}

	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return "", false
	}

	var accessToken string
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &accessToken); err != nil {
		s.logger.WithError(err).Debug("failed to decrypt session cookie")
		return "", false
	}

	return accessToken, accessToken != ""
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			// 308 keeps the method and body of writes
			code := http.StatusMovedPermanently
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				code = http.StatusPermanentRedirect
			}

			http.Redirect(w, r, newURL.String(), code)
			return
		}

		next.ServeHTTP(w, r)
	})
}
