package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"podder.dev/internal/models"
	"podder.dev/internal/services"
)

const projectNotFound = "Project not found"

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: ps, logger: logger}
}

type projectResponse struct {
	Success bool            `json:"success"`
	Project *models.Project `json:"project"`
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetAll()
	if err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input models.ProjectPatch
	if err := decodeJSON(r, &input); err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}

	project, err := h.projectService.Create(input)
	if err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}

	h.logger.Info("project created", zap.String("id", project.ID))
	respondJSON(w, http.StatusOK, projectResponse{Success: true, Project: project})
}

// UpdateProject handles PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.ProjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}

	project, err := h.projectService.Update(id, patch)
	if err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}

	respondJSON(w, http.StatusOK, projectResponse{Success: true, Project: project})
}

// DeleteProject handles DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.Delete(id)
	if err != nil {
		respondServiceError(w, h.logger, err, projectNotFound)
		return
	}

	h.logger.Info("project deleted", zap.String("id", id))
	respondJSON(w, http.StatusOK, struct {
		Success bool            `json:"success"`
		Deleted *models.Project `json:"deleted"`
	}{Success: true, Deleted: project})
}
