package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RouterOption configures the behaviour of NewRouter.
type RouterOption func(*routerConfig)

// WithLogging controls whether access logs are emitted.
func WithLogging(enabled bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.enableLogging = enabled
	}
}

// WithRateLimiter overrides the request limiter, primarily for tests. A nil
// limiter disables throttling.
func WithRateLimiter(limiter requestLimiter) RouterOption {
	return func(cfg *routerConfig) {
		cfg.limiter = limiter
	}
}

// WithRateLimit throttles the API to rps requests per second with the given
// burst. A zero rate or burst disables throttling.
func WithRateLimit(rps float64, burst int) RouterOption {
	return func(cfg *routerConfig) {
		cfg.limiter = nil
		if tb := newTokenBucket(rps, burst); tb != nil {
			cfg.limiter = tb
		}
	}
}

type routerConfig struct {
	enableLogging bool
	logger        *zap.Logger
	limiter       requestLimiter
}

// NewRouter creates the inspection API router. Every request gets a request
// ID, is throttled, logged and recovered from panics.
func NewRouter(handler *Handler, logger *zap.Logger, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		enableLogging: true,
		logger:        logger,
		limiter:       newTokenBucket(25, 50),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	if cfg.limiter != nil {
		r.Use(throttle(cfg.limiter))
	}
	if cfg.enableLogging {
		r.Use(func(next http.Handler) http.Handler { return loggingMiddleware(cfg.logger, next) })
	}
	r.Use(func(next http.Handler) http.Handler { return recoveryMiddleware(cfg.logger, next) })
	r.Use(corsMiddleware)

	r.Get("/api/health", handler.handleHealth)
	r.Get("/api/sources", handler.handleSources)
	r.Get("/api/properties", handler.handleProperties)
	r.Get("/api/properties/{key}", handler.handleProperty)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	})
}

func recoveryMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := contextWithRequestID(r.Context(), requestID)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
