package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"podder.dev/internal/services"
)

// ResumeHandler serves the resume PDF and its preview
type ResumeHandler struct {
	resumeService *services.ResumeService
	logger        *zap.Logger
}

// NewResumeHandler creates a new ResumeHandler
func NewResumeHandler(rs *services.ResumeService, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{resumeService: rs, logger: logger}
}

// Download handles GET /download-resume
func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	file, err := h.resumeService.Build()
	if err != nil {
		respondServiceError(w, h.logger, err, "Resume not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.logger.Warn("resume download interrupted", zap.Error(err))
	}
}

// Preview handles GET /api/resume/preview
func (h *ResumeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.resumeService.Preview()
	if err != nil {
		respondServiceError(w, h.logger, err, "Resume not found")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success    bool                    `json:"success"`
		ResumeData *services.ResumePreview `json:"resume_data"`
	}{Success: true, ResumeData: preview})
}
