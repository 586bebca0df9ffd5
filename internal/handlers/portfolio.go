package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"podder.dev/internal/models"
	"podder.dev/internal/services"
)

// PortfolioHandler serves the portfolio record
type PortfolioHandler struct {
	portfolioService *services.PortfolioService
	logger           *zap.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(ps *services.PortfolioService, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps, logger: logger}
}

// GetPortfolio handles GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolioService.Get()
	if err != nil {
		respondServiceError(w, h.logger, err, "Portfolio not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// UpdatePortfolio handles PUT /api/portfolio
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var patch models.PortfolioPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondServiceError(w, h.logger, err, "Portfolio not found")
		return
	}

	p, err := h.portfolioService.Update(patch)
	if err != nil {
		respondServiceError(w, h.logger, err, "Portfolio not found")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success   bool             `json:"success"`
		Portfolio models.Portfolio `json:"portfolio"`
	}{Success: true, Portfolio: p})
}
