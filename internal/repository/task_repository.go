package repository

import (
	"github.com/mtamura/project-tracker-api/internal/database"
	"github.com/mtamura/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks ordered by descending creation time
func (r *GormTaskRepository) List(skip, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Order("created_at DESC").Scopes(database.Window(skip, limit)).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update applies the non-nil change slots atomically and returns the
// refreshed row.
func (r *GormTaskRepository) Update(id uint64, changes EntryChanges) (*models.Task, error) {
	var task models.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}

		updates := changes.fields()
		if changes.ProjectID != nil {
			updates["project_id"] = *changes.ProjectID
		}
		if changes.ClearProject {
			updates["project_id"] = nil
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&task, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete hard deletes a task and returns the deleted snapshot
func (r *GormTaskRepository) Delete(id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
