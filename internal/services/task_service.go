package services

import (
	"errors"
	"fmt"

	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/mtamura/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	CreateEntryInput
	ProjectID *uint64
}

// UpdateTaskInput represents a partial task edit.
type UpdateTaskInput struct {
	UpdateEntryInput
	ProjectID    *uint64
	ClearProject bool
}

// ListTasks returns tasks newest-first.
func (s *TaskService) ListTasks(skip, limit int) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and creates a task. A provided project reference
// must resolve to an existing project at creation time; it may dangle
// later if the project is deleted.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := validateCreateEntry(&input.CreateEntryInput); err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to check project: %w", err)
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Assignee:    input.Assignee,
		Status:      input.Status,
		Priority:    input.Priority,
		ProjectID:   input.ProjectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial edit to a task.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	changes, err := validateUpdateEntry(input.UpdateEntryInput)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to check project: %w", err)
		}
		changes.ProjectID = input.ProjectID
	}
	changes.ClearProject = input.ClearProject

	task, err := s.taskRepo.Update(id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask hard deletes a task and returns the deleted snapshot.
func (s *TaskService) DeleteTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return task, nil
}
