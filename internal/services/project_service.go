package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/mtamura/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 255 characters")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateEntryInput represents input for creating a project or task.
type CreateEntryInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Assignee    string
	Status      models.Status
	Priority    models.Priority
}

// UpdateEntryInput represents a partial project or task edit.
type UpdateEntryInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	Assignee    *string
	Status      *models.Status
	Priority    *models.Priority
}

func validateCreateEntry(input *CreateEntryInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ErrTitleRequired
	}
	if len(input.Title) > 255 {
		return ErrTitleTooLong
	}
	if input.Status == "" {
		input.Status = models.StatusToDo
	}
	if !input.Status.IsValid() {
		return ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

func validateUpdateEntry(input UpdateEntryInput) (repository.EntryChanges, error) {
	changes := repository.EntryChanges{
		Description: input.Description,
		DueDate:     input.DueDate,
		ClearDue:    input.ClearDue,
		Assignee:    input.Assignee,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return changes, ErrTitleRequired
		}
		if len(title) > 255 {
			return changes, ErrTitleTooLong
		}
		changes.Title = &title
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return changes, ErrInvalidStatus
		}
		changes.Status = input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return changes, ErrInvalidPriority
		}
		changes.Priority = input.Priority
	}
	return changes, nil
}

// ListProjects returns projects newest-first.
func (s *ProjectService) ListProjects(skip, limit int) ([]models.Project, error) {
	projects, err := s.projectRepo.List(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by ID.
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates and creates a project.
func (s *ProjectService) CreateProject(input CreateEntryInput) (*models.Project, error) {
	if err := validateCreateEntry(&input); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Assignee:    input.Assignee,
		Status:      input.Status,
		Priority:    input.Priority,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject applies a partial edit to a project.
func (s *ProjectService) UpdateProject(id uint64, input UpdateEntryInput) (*models.Project, error) {
	changes, err := validateUpdateEntry(input)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Update(id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject hard deletes a project and returns the deleted snapshot.
// Its tasks survive with a dangling project reference.
func (s *ProjectService) DeleteProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return project, nil
}
