package services

import (
	"fmt"

	"github.com/google/uuid"

	"podder.dev/internal/models"
)

// ProjectStore loads and rewrites the projects document
type ProjectStore interface {
	Load() (models.ProjectList, error)
	Update(fn func(*models.ProjectList) error) (models.ProjectList, error)
}

// ProjectService handles project-related operations
type ProjectService struct {
	store ProjectStore
	newID func() string
}

// NewProjectService creates a new ProjectService
func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store, newID: uuid.NewString}
}

// GetAll returns the projects document
func (s *ProjectService) GetAll() (models.ProjectList, error) {
	return s.store.Load()
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	list, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	i := list.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return &list.Projects[i], nil
}

// Create appends a project built from the patch under a fresh id
func (s *ProjectService) Create(input models.ProjectPatch) (*models.Project, error) {
	project := models.Project{
		ID:           s.newID(),
		Technologies: []string{},
	}
	input.Apply(&project)

	_, err := s.store.Update(func(list *models.ProjectList) error {
		list.Projects = append(list.Projects, project)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// Update changes the fields set in the patch and keeps the rest
func (s *ProjectService) Update(id string, patch models.ProjectPatch) (*models.Project, error) {
	var updated models.Project
	_, err := s.store.Update(func(list *models.ProjectList) error {
		i := list.IndexOf(id)
		if i < 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		patch.Apply(&list.Projects[i])
		updated = list.Projects[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the project and returns it
func (s *ProjectService) Delete(id string) (*models.Project, error) {
	var deleted models.Project
	_, err := s.store.Update(func(list *models.ProjectList) error {
		i := list.IndexOf(id)
		if i < 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		deleted = list.Projects[i]
		list.Projects = append(list.Projects[:i], list.Projects[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
