package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askillindva/XmlTemplateGenerator/internal/activitylog"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/config"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/database"
	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/observability"
	"github.com/askillindva/XmlTemplateGenerator/internal/generator"
)

// Server is the HTTP surface of the generator: listing, form, generate,
// audit page, health and metrics.
type Server struct {
	cfg      config.ServerConfig
	logger   logger.Logger
	service  *generator.Service
	logs     *activitylog.Store
	db       *database.SQLiteClient
	obs      *observability.Observability
	errs     *apperrors.ErrorHandler
	renderer *Renderer
	mux      *http.ServeMux
}

func NewServer(
	cfg config.ServerConfig,
	service *generator.Service,
	logs *activitylog.Store,
	db *database.SQLiteClient,
	obs *observability.Observability,
	log logger.Logger,
) (*Server, error) {
	renderer, err := NewRenderer(log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "web"}),
		service:  service,
		logs:     logs,
		db:       db,
		obs:      obs,
		errs:     apperrors.NewErrorHandler(log),
		renderer: renderer,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /template/{name}", s.handleTemplateForm)
	s.mux.HandleFunc("POST /generate/{name}", s.handleGenerate)
	s.mux.HandleFunc("GET /logs", s.handleLogs)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("/", s.handleNotFound)
}

// Handler returns the full handler chain.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.mux)
}

// NewHTTPServer builds the http.Server with the configured timeouts.
func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := r.Pattern
		if route == "" {
			route = r.URL.Path
		}
		duration := time.Since(start)
		s.obs.RecordRequest(r.Context(), route, recorder.status)
		s.obs.RecordRequestDuration(r.Context(), route, duration)
		s.logger.Info("request handled", map[string]interface{}{
			"requestId":  requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     recorder.status,
			"durationMs": duration.Milliseconds(),
		})
	})
}
