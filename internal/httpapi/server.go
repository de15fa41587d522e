package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "aiengine/docs"
	"aiengine/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Root() types.RootResponse
	Health(ctx context.Context) types.HealthResponse
	Infer(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
}

// NewMux builds the router for the facade endpoints.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, metrics, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	h := &handlers{svc: svc}
	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Post("/inference", h.inference)

	// Process liveness, independent of the backend.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

type handlers struct {
	svc Service
}

// root godoc
// @Summary      Service banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.RootResponse
// @Router       / [get]
func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Root())
}

// health godoc
// @Summary      Backend and host health
// @Description  Always 200. Degradation is reported in the body.
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := h.svc.Health(r.Context())
	writeJSON(w, http.StatusOK, resp)
	if lvl := requestLogLevel(r); lvl >= LevelDebug {
		zlog.Debug().
			Str("status", resp.Status).
			Bool("model_loaded", resp.ModelLoaded).
			Dur("dur", time.Since(start)).
			Msg("health")
	}
}

// inference godoc
// @Summary      Run one completion
// @Description  Renders the chat prompt and forwards it to the llama server.
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        request  body      types.ChatRequest  true  "Chat request"
// @Success      200      {object}  types.ChatResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Failure      504      {object}  types.ErrorResponse
// @Router       /inference [post]
func (h *handlers) inference(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lvl := requestLogLevel(r)

	// Content-Type check
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		recordInference("invalid")
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			msg := field + " must be " + typeErr.Type.String()
			writeJSONError(w, http.StatusUnprocessableEntity, msg)
			logRequestEnd(r, lvl, http.StatusUnprocessableEntity, start, err)
			return
		}
		// Oversized bodies land here too; report them as 400 without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		logRequestEnd(r, lvl, http.StatusBadRequest, start, err)
		return
	}

	resp, err := h.svc.Infer(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		var he HTTPError
		if errors.As(err, &he) {
			status = he.StatusCode()
		}
		switch status {
		case http.StatusUnprocessableEntity:
			recordInference("invalid")
		case http.StatusGatewayTimeout:
			recordInference("timeout")
		default:
			recordInference("error")
		}
		writeJSONError(w, status, err.Error())
		logRequestEnd(r, lvl, status, start, err)
		return
	}
	recordInference("ok")
	writeJSON(w, http.StatusOK, resp)
	logRequestEnd(r, lvl, http.StatusOK, start, nil)
}
