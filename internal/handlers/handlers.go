package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"podder.dev/internal/config"
	"podder.dev/internal/metrics"
	"podder.dev/internal/middleware"
	"podder.dev/internal/services"
	"podder.dev/internal/store"
)

// AppName is recorded as the creator of generated documents
const AppName = "podder.dev portfolio"

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, st *store.Store, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Chain(logger, m)...)

	uploadURL, uploadMounted := uploadURLPrefix(cfg.Storage)

	// Initialize services
	projectService := services.NewProjectService(st.Projects)
	portfolioService := services.NewPortfolioService(st.Portfolio)
	uploadService := services.NewUploadService(cfg.Storage.UploadDir, uploadURL, cfg.Upload.Extensions, m, logger)
	resumeService := services.NewResumeService(st.Portfolio, st.Projects, cfg.Renderer(AppName), m, logger)

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService, logger)
	portfolioHandler := NewPortfolioHandler(portfolioService, logger)
	uploadHandler := NewUploadHandler(uploadService, cfg.Upload.MaxBytes, logger)
	resumeHandler := NewResumeHandler(resumeService, logger)
	pageHandler := NewPageHandler(portfolioService, projectService, uploadURL, logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Post("/projects", projectHandler.CreateProject)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Put("/projects/{id}", projectHandler.UpdateProject)
		r.Delete("/projects/{id}", projectHandler.DeleteProject)

		// Portfolio endpoints
		r.Get("/portfolio", portfolioHandler.GetPortfolio)
		r.Put("/portfolio", portfolioHandler.UpdatePortfolio)

		r.Post("/upload", uploadHandler.Upload)
		r.Get("/resume/preview", resumeHandler.Preview)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Get("/download-resume", resumeHandler.Download)
	r.Handle("/metrics", m.Handler())

	// Static files
	fileServer := http.FileServer(http.Dir(cfg.Storage.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))
	if !uploadMounted {
		uploads := http.FileServer(http.Dir(cfg.Storage.UploadDir))
		r.Handle(uploadURL+"/*", http.StripPrefix(uploadURL, uploads))
	}

	// Portfolio page at root
	r.Get("/", pageHandler.Index)

	return r
}

// uploadURLPrefix returns the URL path uploads are served under. When the
// upload directory sits inside the static directory the static file server
// already covers it.
func uploadURLPrefix(s config.StorageConfig) (string, bool) {
	rel, err := filepath.Rel(s.StaticDir, s.UploadDir)
	if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path.Join("/static", filepath.ToSlash(rel)), true
	}
	return "/uploads", false
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("error encoding JSON", zap.Error(err))
	}
}

// errorResponse is the failure envelope shared by all endpoints
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Error: message})
}

// respondServiceError maps a service error to its status code. notFound is
// the message used for ErrNotFound.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, notFound string) {
	var inputErr *services.InputError
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, notFound)
	case errors.As(err, &inputErr):
		respondError(w, http.StatusBadRequest, inputErr.Msg)
	case errors.Is(err, services.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &services.InputError{Msg: "Invalid request body: " + err.Error()}
	}
	return nil
}
