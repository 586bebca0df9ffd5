package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"podder.dev/internal/metrics"
	"podder.dev/internal/models"
	"podder.dev/internal/resume"
)

// DocumentRenderer turns an assembled resume into PDF bytes
type DocumentRenderer interface {
	Bytes(doc resume.Document) ([]byte, error)
}

// ResumePreview is the data the resume is built from, plus the assembled blocks
type ResumePreview struct {
	Personal       models.Personal  `json:"personal"`
	Education      models.Education `json:"education"`
	Skills         models.Skills    `json:"skills"`
	Projects       []models.Project `json:"projects"`
	Certifications []string         `json:"certifications"`
	Blocks         []resume.Block   `json:"blocks"`
}

// ResumeFile is a rendered resume ready for download
type ResumeFile struct {
	Name string
	Data []byte
}

// ResumeService assembles and renders the resume from the stored documents
type ResumeService struct {
	portfolio PortfolioStore
	projects  ProjectStore
	renderer  DocumentRenderer
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewResumeService creates a new ResumeService
func NewResumeService(portfolio PortfolioStore, projects ProjectStore, renderer DocumentRenderer, m *metrics.Metrics, logger *zap.Logger) *ResumeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeService{
		portfolio: portfolio,
		projects:  projects,
		renderer:  renderer,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ResumeService) load() (models.Portfolio, models.ProjectList, error) {
	p, err := s.portfolio.Load()
	if err != nil {
		return p, models.ProjectList{}, err
	}
	list, err := s.projects.Load()
	if err != nil {
		return p, list, err
	}
	return p, list, nil
}

// Preview returns the resume sections and the block list they produce
func (s *ResumeService) Preview() (*ResumePreview, error) {
	p, list, err := s.load()
	if err != nil {
		return nil, err
	}
	doc := resume.Assemble(p, list.Projects)
	return &ResumePreview{
		Personal:       p.Personal,
		Education:      p.Education,
		Skills:         p.Skills,
		Projects:       list.Projects,
		Certifications: p.Certifications,
		Blocks:         doc.Blocks,
	}, nil
}

// Build renders the resume PDF and names it after the portfolio owner
func (s *ResumeService) Build() (*ResumeFile, error) {
	p, list, err := s.load()
	if err != nil {
		s.metrics.ObserveRender(metrics.ResultError)
		return nil, err
	}

	doc := resume.Assemble(p, list.Projects)
	data, err := s.renderer.Bytes(doc)
	if err != nil {
		s.metrics.ObserveRender(metrics.ResultError)
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}

	s.metrics.ObserveRender(metrics.ResultSuccess)
	name := Filename(p.Personal.Name, s.now())
	s.logger.Debug("rendered resume",
		zap.String("filename", name),
		zap.Int("blocks", len(doc.Blocks)),
		zap.Int("bytes", len(data)),
	)
	return &ResumeFile{Name: name, Data: data}, nil
}

// Filename returns "{Name}_Resume_{YYYYMMDD}.pdf". The name goes through
// SecureFilename, so spaces become underscores and path separators never
// survive. A name with nothing left becomes "Resume".
func Filename(name string, now time.Time) string {
	name = SecureFilename(name)
	if name == "" {
		name = "Resume"
	}
	return fmt.Sprintf("%s_Resume_%s.pdf", name, now.Format("20060102"))
}
