package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/usecase"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
)

// DefaultBodyLimit caps request bodies
const DefaultBodyLimit = 2 << 20

type AnalysisUseCase interface {
	Analyze(ctx context.Context, entry *model.Entry) (*usecase.AnalyzeResult, error)
	AnalyzeLite(ctx context.Context, entry *model.Entry) (*usecase.AnalyzeResult, error)
	Similar(ctx context.Context, userID, entryID string, limit int) ([]model.SimilarEntry, error)
}

type SummaryUseCase interface {
	Summarize(ctx context.Context, input *model.SummaryInput) (*model.Summary, error)
}

type Server struct {
	router     *chi.Mux
	analysisUC AnalysisUseCase
	summaryUC  SummaryUseCase
	bodyLimit  int64
	origin     string
}

type Options func(*Server)

// WithBodyLimit overrides DefaultBodyLimit
func WithBodyLimit(n int64) Options {
	return func(s *Server) {
		s.bodyLimit = n
	}
}

// WithAllowedOrigin sets Access-Control-Allow-Origin. Defaults to "*".
func WithAllowedOrigin(origin string) Options {
	return func(s *Server) {
		s.origin = origin
	}
}

func New(analysisUC AnalysisUseCase, summaryUC SummaryUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:     r,
		analysisUC: analysisUC,
		summaryUC:  summaryUC,
		bodyLimit:  DefaultBodyLimit,
		origin:     "*",
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.origin))
	r.Use(bodyLimit(s.bodyLimit))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", healthzHandler)
		r.Post("/analyze", analyzeHandler(s.analysisUC))
		r.Post("/analyze-lite", analyzeLiteHandler(s.analysisUC))
		r.Post("/similar", similarHandler(s.analysisUC))
		r.Post("/summary", summaryHandler(s.summaryUC))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
