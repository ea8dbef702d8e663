package repository

import (
	"time"

	"github.com/mtamura/project-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (case-sensitive key)
	FindByEmail(email string) (*models.User, error)

	// List retrieves users in insertion order with a skip/limit window
	List(skip, limit int) ([]models.User, error)

	// Update applies the provided changes to a user and returns the result
	Update(id uint64, changes UserChanges) (*models.User, error)

	// Delete hard deletes a user and returns the deleted snapshot
	Delete(id uint64) (*models.User, error)
}

// UserChanges holds the optional per-column slots for a partial user update.
// Only non-nil slots are applied.
type UserChanges struct {
	Email          *string
	FirstName      *string
	LastName       *string
	HashedPassword *string
	IsActive       *bool
	IsSuperuser    *bool
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// List retrieves projects ordered by descending creation time
	List(skip, limit int) ([]models.Project, error)

	// Update applies the provided changes to a project and returns the result
	Update(id uint64, changes EntryChanges) (*models.Project, error)

	// Delete hard deletes a project and returns the deleted snapshot.
	// Tasks referencing the project are left untouched.
	Delete(id uint64) (*models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks ordered by descending creation time
	List(skip, limit int) ([]models.Task, error)

	// Update applies the provided changes to a task and returns the result
	Update(id uint64, changes EntryChanges) (*models.Task, error)

	// Delete hard deletes a task and returns the deleted snapshot
	Delete(id uint64) (*models.Task, error)
}

// EntryChanges holds the optional per-column slots shared by project and
// task partial updates. Only non-nil slots are applied; the Clear flags
// null out their column explicitly.
type EntryChanges struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	Assignee    *string
	Status      *models.Status
	Priority    *models.Priority

	// Task-only: reassign or detach the owning project.
	ProjectID    *uint64
	ClearProject bool
}

func (c EntryChanges) fields() map[string]interface{} {
	updates := make(map[string]interface{})
	if c.Title != nil {
		updates["title"] = *c.Title
	}
	if c.Description != nil {
		updates["description"] = *c.Description
	}
	if c.DueDate != nil {
		updates["due_date"] = *c.DueDate
	}
	if c.ClearDue {
		updates["due_date"] = nil
	}
	if c.Assignee != nil {
		updates["assignee"] = *c.Assignee
	}
	if c.Status != nil {
		updates["status"] = *c.Status
	}
	if c.Priority != nil {
		updates["priority"] = *c.Priority
	}
	return updates
}
