package store

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"podder.dev/internal/models"
)

const (
	PortfolioFile = "portfolio.json"
	ProjectsFile  = "projects.json"
)

//go:embed seed/portfolio.json
var seedPortfolio []byte

//go:embed seed/projects.json
var seedProjects []byte

// Store groups the two documents of the data directory
type Store struct {
	Portfolio *Document[models.Portfolio]
	Projects  *Document[models.ProjectList]
}

// Open prepares the data directory and writes the default documents on first
// run. Existing files are never touched.
func Open(dataPath string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		Portfolio: NewDocument(filepath.Join(dataPath, PortfolioFile), (*models.Portfolio).Normalize, logger),
		Projects:  NewDocument(filepath.Join(dataPath, ProjectsFile), (*models.ProjectList).Normalize, logger),
	}

	if err := s.Portfolio.EnsureSeed(seedPortfolio); err != nil {
		return nil, err
	}
	if err := s.Projects.EnsureSeed(seedProjects); err != nil {
		return nil, err
	}
	return s, nil
}
