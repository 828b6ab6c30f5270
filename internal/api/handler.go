package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eugenenazirov/json-properties/internal/environment"
	"github.com/eugenenazirov/json-properties/internal/propsource"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// PropertyReader exposes the read side of the configuration environment.
type PropertyReader interface {
	Sources() []*propsource.PropertySource
	Properties() []environment.Property
	Property(key string) (environment.Property, error)
}

// Handler serves read-only views of the loaded configuration.
type Handler struct {
	env   PropertyReader
	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler over the provided environment.
func NewHandler(env PropertyReader, opts ...HandlerOption) *Handler {
	h := &Handler{
		env: env,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Sources:   len(h.env.Sources()),
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSources(w http.ResponseWriter, _ *http.Request) {
	sources := h.env.Sources()
	resp := sourcesResponse{Sources: make([]sourceResponse, 0, len(sources))}
	for _, src := range sources {
		resp.Sources = append(resp.Sources, sourceResponse{
			Name:       src.Name(),
			Origin:     src.Origin(),
			Properties: src.Len(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleProperties(w http.ResponseWriter, _ *http.Request) {
	props := h.env.Properties()
	resp := propertiesResponse{Properties: make([]propertyResponse, 0, len(props))}
	for _, p := range props {
		resp.Properties = append(resp.Properties, toPropertyResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleProperty(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "property key is required")
		return
	}

	p, err := h.env.Property(key)
	if err != nil {
		if errors.Is(err, environment.ErrPropertyNotFound) {
			writeError(w, http.StatusNotFound, "Property not found", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponse(p))
}

func toPropertyResponse(p environment.Property) propertyResponse {
	return propertyResponse{
		Key:    p.Key,
		Value:  p.Value,
		Source: p.Source,
		Origin: p.Origin,
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Sources   int       `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}

type sourceResponse struct {
	Name       string `json:"name"`
	Origin     string `json:"origin"`
	Properties int    `json:"properties"`
}

type sourcesResponse struct {
	Sources []sourceResponse `json:"sources"`
}

type propertyResponse struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
	Origin string `json:"origin"`
}

type propertiesResponse struct {
	Properties []propertyResponse `json:"properties"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
