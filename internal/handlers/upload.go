package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"podder.dev/internal/services"
)

// UploadHandler accepts project images
type UploadHandler struct {
	uploadService *services.UploadService
	maxBytes      int64
	logger        *zap.Logger
}

// NewUploadHandler creates a new UploadHandler. maxBytes <= 0 disables the
// request size cap.
func NewUploadHandler(us *services.UploadService, maxBytes int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploadService: us, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /api/upload with a multipart "file" field
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	upload, err := h.uploadService.Save(header.Filename, file)
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*services.Upload
	}{Success: true, Upload: upload})
}
