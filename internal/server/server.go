package server

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"connectplus/internal/auth"
	"connectplus/internal/store"
	"connectplus/internal/transfer"
	"connectplus/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config
	db     *sql.DB

	resourceRepo *store.ResourceRepository
	roleRepo     *store.RoleRepository
	needRepo     *store.NeedRepository
	userRepo     *store.UserRepository

	gate     *auth.Gate
	issuer   *auth.Issuer
	importer *transfer.Importer
	exporter *transfer.Exporter

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	db *sql.DB,
	resourceRepo *store.ResourceRepository,
	roleRepo *store.RoleRepository,
	needRepo *store.NeedRepository,
	userRepo *store.UserRepository,
	gate *auth.Gate,
	issuer *auth.Issuer,
	importer *transfer.Importer,
	exporter *transfer.Exporter,
) (*Service, error) {
	mux := flow.New()

	cookie, err := newSecureCookie(config, issuer.TTL(), logger)
	if err != nil {
		return nil, err
	}

	s := &Service{
		logger: logger,
		config: config,
		db:     db,
		cookie: cookie,

		resourceRepo: resourceRepo,
		roleRepo:     roleRepo,
		needRepo:     needRepo,
		userRepo:     userRepo,

		gate:     gate,
		issuer:   issuer,
		importer: importer,
		exporter: exporter,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	// applied outside the router so paths that only differ by a trailing
	// slash still reach it
	s.server.Handler = s.StripTrailingSlash(mux)

	return s, nil
}

// newSecureCookie expires cookie values with the tokens they carry.
func newSecureCookie(config *types.Config, ttl time.Duration, logger *logrus.Logger) (*securecookie.SecureCookie, error) {
	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode COOKIE_HASH_KEY: %w", err)
	}

	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode COOKIE_BLOCK_KEY: %w", err)
	}

	if len(hashKey) == 0 || len(blockKey) == 0 {
		// sessions will not survive a restart
		logger.Warn("cookie keys not configured, generating ephemeral keys")
		hashKey = securecookie.GenerateRandomKey(64)
		blockKey = securecookie.GenerateRandomKey(32)
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(int(ttl.Seconds()))

	return cookie, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mostly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "Not found")
	})

	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/auth/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/auth/logout", s.handlePostLogout, http.MethodPost)

	// the discovery flow reads these anonymously
	r.HandleFunc("/resources", s.handleGetResources, http.MethodGet)
	r.HandleFunc("/resources/:id", s.handleGetResource, http.MethodGet)
	r.HandleFunc("/roles", s.handleGetRoles, http.MethodGet)
	r.HandleFunc("/roles/:id", s.handleGetRole, http.MethodGet)
	r.HandleFunc("/needs", s.handleGetNeeds, http.MethodGet)
	r.HandleFunc("/needs/:id", s.handleGetNeed, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/auth/session", s.handleGetSession, http.MethodGet)

		r.HandleFunc("/resources", s.handlePostResource, http.MethodPost)
		r.HandleFunc("/resources/:id", s.handleUpdateResource, http.MethodPut, http.MethodPatch)
		r.HandleFunc("/resources/:id", s.handleDeleteResource, http.MethodDelete)

		r.HandleFunc("/roles", s.handlePostRole, http.MethodPost)
		r.HandleFunc("/roles/:id", s.handleUpdateRole, http.MethodPut, http.MethodPatch)
		r.HandleFunc("/roles/:id", s.handleDeleteRole, http.MethodDelete)

		r.HandleFunc("/needs", s.handlePostNeed, http.MethodPost)
		r.HandleFunc("/needs/:id", s.handleUpdateNeed, http.MethodPut, http.MethodPatch)
		r.HandleFunc("/needs/:id", s.handleDeleteNeed, http.MethodDelete)

		r.HandleFunc("/users", s.handleGetUsers, http.MethodGet)
		r.HandleFunc("/users", s.handlePostUser, http.MethodPost)
		r.HandleFunc("/users/:id", s.handleGetUser, http.MethodGet)
		r.HandleFunc("/users/:id", s.handleUpdateUser, http.MethodPut, http.MethodPatch)
		r.HandleFunc("/users/:id", s.handleDeleteUser, http.MethodDelete)

		r.HandleFunc("/admin/export", s.handleGetExport, http.MethodGet)
		r.HandleFunc("/admin/import", s.handlePostImport, http.MethodPost)
		r.HandleFunc("/admin/stats", s.handleGetStats, http.MethodGet)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.WithError(err).Error("database ping failed")
		s.writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) identityFromContext(ctx context.Context) (*types.Identity, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return nil, fmt.Errorf("user id not found in context")
	}
	email, _ := ctx.Value(contextKeyEmail).(string)

	return &types.Identity{ID: userID, Email: email}, nil
}
