package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/automaton-ml/internal/application/analysis"
	"github.com/bryanwahyu/automaton-ml/internal/config"
	"github.com/bryanwahyu/automaton-ml/internal/infra/monitoring"
	"github.com/bryanwahyu/automaton-ml/internal/middleware"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "ml-service"

type Router struct {
	svc *appanalysis.Service
	cfg *config.Config
}

func NewRouter(svc *appanalysis.Service, cfg *config.Config) http.Handler {
	r := &Router{svc: svc, cfg: cfg}
	mux := chi.NewRouter()

	mux.Use(monitoring.TracingMiddleware())
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.Origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Enabled {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKey))

	mux.Get("/health", middleware.HealthHandler(ServiceName))
	mux.Get("/gpu-status", middleware.GPUStatusHandler)
	mux.Method(http.MethodGet, "/metrics", monitoring.Handler())
	mux.Post("/analyze", r.wrap(r.handleAnalyze))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// apiError carries the status and code for the JSON error envelope.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var apiErr *apiError
			if errors.As(err, &apiErr) {
				writeError(w, apiErr.status, apiErr.code, apiErr.message)
				return
			}
			writeError(w, http.StatusInternalServerError, "ANALYSIS_FAILED", err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}

// POST /analyze
// Body: {"text": "<content>", "source_url": "<optional>"}
// Validation failures respond before any metric is recorded, so the
// prediction series only count requests that reached the analyzer.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, int64(r.cfg.Server.MaxTextBytes))

	var body struct {
		Text      string `json:"text"`
		SourceURL string `json:"source_url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &apiError{status: http.StatusRequestEntityTooLarge, code: "REQUEST_TOO_LARGE", message: "Request body exceeds the configured size limit"}
		}
		return &apiError{status: http.StatusBadRequest, code: "INVALID_REQUEST", message: "Request body is required"}
	}

	if err := middleware.ValidateText(body.Text); err != nil {
		return &apiError{status: http.StatusBadRequest, code: "EMPTY_INPUT", message: "Text content is required"}
	}

	result, err := r.svc.Analyze(appanalysis.AnalyzeCommand{
		Text:      body.Text,
		SourceURL: body.SourceURL,
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}
