package api

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/todod/pkg/domain"
)

// DefaultRedirectURL is the front-end origin mutations redirect to
const DefaultRedirectURL = "http://localhost:5173"

// Handler provides HTTP handlers for the todo API
type Handler struct {
	store       domain.TodoStore
	logger      *logrus.Entry
	redirectURL string
	jsonAcks    bool
}

type HandlerOption func(*Handler)

// WithRedirectURL sets where create, update and delete redirect to
func WithRedirectURL(url string) HandlerOption {
	return func(h *Handler) {
		h.redirectURL = url
	}
}

// WithJSONAcks answers mutations with a JSON acknowledgement instead
// of a redirect.
func WithJSONAcks(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.jsonAcks = enabled
	}
}

func WithLogger(logger *logrus.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger.WithField("component", "api")
	}
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(store domain.TodoStore, options ...HandlerOption) *Handler {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	h := &Handler{
		store:       store,
		logger:      discard.WithField("component", "api"),
		redirectURL: DefaultRedirectURL,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// log returns the handler logger tagged with the request id, if any
func (h *Handler) log(r *http.Request) *logrus.Entry {
	if id := RequestIDFromContext(r.Context()); id != "" {
		return h.logger.WithField("request_id", id)
	}
	return h.logger
}
