package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/todod/pkg/api"
	"github.com/adfharrison1/todod/pkg/domain"
	"github.com/adfharrison1/todod/pkg/snapshot"
)

// Options configures a Server
type Options struct {
	// RedirectURL is where successful mutations redirect to.
	// Defaults to api.DefaultRedirectURL.
	RedirectURL string

	// JSONAcks answers mutations with JSON instead of a redirect.
	JSONAcks bool

	// Logger defaults to a logger writing nowhere.
	Logger *logrus.Logger
}

// Server holds references to storage, router, etc.
type Server struct {
	router  *mux.Router
	handler http.Handler
	store   domain.TodoStore
	logger  *logrus.Logger
}

// NewServer creates a new instance of Server.
func NewServer(store domain.TodoStore, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	redirectURL := opts.RedirectURL
	if redirectURL == "" {
		redirectURL = api.DefaultRedirectURL
	}

	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		logger: logger,
	}

	handler := api.NewHandler(store,
		api.WithRedirectURL(redirectURL),
		api.WithJSONAcks(opts.JSONAcks),
		api.WithLogger(logger),
	)
	handler.RegisterRoutes(s.router)

	s.router.Use(requestIDMiddleware, s.requestLoggerMiddleware)

	// Customize NotFoundHandler and MethodNotAllowedHandler to log misses
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warnf("No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warnf("Method %s not allowed for %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusMethodNotAllowed, r.Method+" not allowed for "+r.URL.Path)
	})

	s.handler = permissiveCORS().Handler(s.router)

	return s
}

// permissiveCORS allows any origin, method and header, with credentials.
func permissiveCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{api.RequestIDHeader},
		AllowCredentials: true,
	})
}

// Router exposes the HTTP handler with CORS applied.
func (s *Server) Router() http.Handler {
	return s.handler
}

// SaveBackup writes a snapshot of every todo to filename
func (s *Server) SaveBackup(ctx context.Context, filename string) error {
	todos, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Errorf("Could not read todos for backup %s", filename)
		return err
	}
	if err := snapshot.SaveToFile(filename, todos); err != nil {
		s.logger.WithError(err).Errorf("Could not save backup to file %s", filename)
		return err
	}
	s.logger.Infof("Saved %d todos to backup file %s", len(todos), filename)
	return nil
}
