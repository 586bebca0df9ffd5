package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"podder.dev/internal/models"
	"podder.dev/internal/resume"
	"podder.dev/internal/services"
)

//go:embed templates/index.html
var templateFS embed.FS

// PageHandler renders the public portfolio page
type PageHandler struct {
	portfolioService *services.PortfolioService
	projectService   *services.ProjectService
	tmpl             *template.Template
	logger           *zap.Logger
}

// NewPageHandler creates a new PageHandler. Bare image file names on
// projects are resolved under uploadURL.
func NewPageHandler(pos *services.PortfolioService, prs *services.ProjectService, uploadURL string, logger *zap.Logger) *PageHandler {
	tmpl := template.Must(
		template.New("index.html").
			Funcs(template.FuncMap{
				"category": resume.CategoryName,
				"imageURL": func(image string) string { return imageURL(uploadURL, image) },
			}).
			ParseFS(templateFS, "templates/index.html"),
	)
	return &PageHandler{portfolioService: pos, projectService: prs, tmpl: tmpl, logger: logger}
}

// imageURL maps an uploaded file name to its URL. Absolute paths and
// http(s) links are returned as they are.
func imageURL(prefix, image string) string {
	if strings.HasPrefix(image, "/") || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return path.Join(prefix, image)
}

type pageData struct {
	Portfolio models.Portfolio
	Projects  []models.Project
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.Get()
	if err != nil {
		h.logger.Error("failed to load portfolio", zap.Error(err))
		http.Error(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}
	projects, err := h.projectService.GetAll()
	if err != nil {
		h.logger.Error("failed to load projects", zap.Error(err))
		http.Error(w, "Failed to load projects", http.StatusInternalServerError)
		return
	}

	// render fully before writing so a template error still yields a clean 500
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, pageData{Portfolio: portfolio, Projects: projects.Projects}); err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
