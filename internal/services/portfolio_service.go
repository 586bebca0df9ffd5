package services

import (
	"fmt"

	"podder.dev/internal/models"
)

// PortfolioStore loads and rewrites the portfolio document
type PortfolioStore interface {
	Load() (models.Portfolio, error)
	Update(fn func(*models.Portfolio) error) (models.Portfolio, error)
}

// PortfolioService reads and merges the portfolio record
type PortfolioService struct {
	store PortfolioStore
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(store PortfolioStore) *PortfolioService {
	return &PortfolioService{store: store}
}

// Get returns the stored portfolio
func (s *PortfolioService) Get() (models.Portfolio, error) {
	return s.store.Load()
}

// Update merges the patch into the stored portfolio and returns the result
func (s *PortfolioService) Update(patch models.PortfolioPatch) (models.Portfolio, error) {
	p, err := s.store.Update(func(p *models.Portfolio) error {
		patch.Apply(p)
		return nil
	})
	if err != nil {
		return p, fmt.Errorf("failed to update portfolio: %w", err)
	}
	return p, nil
}
