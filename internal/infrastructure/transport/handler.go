package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"readmearchitect/app/usecase"
	"readmearchitect/internal/infrastructure/metrics"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	auth     usecase.AuthUsecase
	projects usecase.ProjectUsecase
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(auth usecase.AuthUsecase, projects usecase.ProjectUsecase, logger *slog.Logger) *Handler {
	return &Handler{
		auth:     auth,
		projects: projects,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Middleware для метрик
func (h *Handler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		metrics.ObserveHTTPRequest(r.Method, path, rw.status, time.Since(start))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.withMetrics(h.handleRoot)).Methods(http.MethodGet)
	r.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.withMetrics(h.handleRegister)).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.withMetrics(h.handleLogin)).Methods(http.MethodPost)
	auth.HandleFunc("/me", h.withMetrics(h.requireUser(h.handleMe))).Methods(http.MethodGet)

	projects := r.PathPrefix("/projects").Subrouter()
	projects.HandleFunc("/generate-readme", h.withMetrics(h.requireUser(h.handleGenerateReadme))).Methods(http.MethodPost)
	projects.HandleFunc("/history", h.withMetrics(h.requireUser(h.handleHistory))).Methods(http.MethodGet)
	// The upgrade needs the raw writer, so no metrics wrapper here.
	projects.HandleFunc("/ws/generate", h.handleGenerateWS).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// GET /
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "README Architect API is running"})
}

// GET /health
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"ok": true,
		"ts": time.Now().UTC(),
	}
	writeJSON(w, http.StatusOK, status)
}
