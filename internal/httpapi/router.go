// Package httpapi exposes the schema workflow over JSON/HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

// Options configures the router.
type Options struct {
	// AllowedOrigins lists the origins CORS accepts. Empty disables CORS.
	AllowedOrigins []string
	// MaxBodyBytes caps request bodies. Zero means 4 MiB.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 4 << 20

// Router serves the schemaboard API.
type Router struct {
	svc     *workflow.Service
	logger  *zap.Logger
	maxBody int64
}

// NewRouter builds the chi handler for svc.
func NewRouter(svc *workflow.Service, logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Router{svc: svc, logger: logger, maxBody: opts.MaxBodyBytes}
	if rt.maxBody <= 0 {
		rt.maxBody = defaultMaxBodyBytes
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(logger))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Route("/api/schemas", func(r chi.Router) {
		r.Get("/", rt.listSchemas)
		r.Post("/", rt.importSchema)
		r.Route("/{schemaID}", func(r chi.Router) {
			r.Get("/", rt.getSchema)
			r.Get("/fields", rt.getFields)
			r.Post("/save", rt.saveSchema)
			r.Get("/history", rt.getHistory)
			r.Get("/reviews", rt.getReviews)
			r.Get("/comments", rt.getComments)
			r.Post("/comments", rt.addComment)
			r.Post("/review/analyze", rt.analyzeSchema)
			r.Post("/review/approve", rt.reviewSchema)
			r.Post("/review/correct", rt.correctSchema)
		})
	})
	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	rt.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())))
		})
	}
}
