package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/InstaSync_Go/internal/auth"
	"github.com/osse101/InstaSync_Go/internal/database"
	"github.com/osse101/InstaSync_Go/internal/handler"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/metrics"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	DBPool         database.Pool // nil when state is kept in memory
	Auth           auth.Service
	Resolver       handler.MetadataResolver
	Feeds          handler.FeedCatalog
	Syncer         worker.FeedSyncer
	Queue          handler.JobQueue
	APIKey         string
	TrustedProxies []string
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(deps.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxRequestBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Account linking pages are visited by the account owner's browser
	r.Get(handler.PathLink, handler.HandleLink(deps.Auth))
	r.Get(handler.PathCallback, handler.HandleCallback(deps.Auth))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(deps.APIKey, deps.TrustedProxies, detector))

		r.Get("/token", handler.HandleTokenStatus(deps.Auth))

		r.Route("/media/{id}", func(r chi.Router) {
			r.Get("/", handler.HandleGetMedia(deps.Resolver))
			r.Get("/{attribute}", handler.HandleGetMediaAttribute(deps.Resolver))
		})

		r.Post("/feeds/{feed}/sync", handler.HandleSyncFeed(deps.Feeds, deps.Syncer, deps.Queue))
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range quietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// sanitizeQuery hides the one-time authorization code in logged callback URLs
func sanitizeQuery(r *http.Request) string {
	q := r.URL.Query()
	if q.Has("code") {
		q.Set("code", RedactedValue)
	}
	return q.Encode()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"query", sanitizeQuery(r),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
