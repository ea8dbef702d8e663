package repository

import (
	"github.com/mtamura/project-tracker-api/internal/database"
	"github.com/mtamura/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(project).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects ordered by descending creation time
func (r *GormProjectRepository) List(skip, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Order("created_at DESC").Scopes(database.Window(skip, limit)).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies the non-nil change slots atomically and returns the
// refreshed row.
func (r *GormProjectRepository) Update(id uint64, changes EntryChanges) (*models.Project, error) {
	var project models.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, id).Error; err != nil {
			return err
		}

		updates := changes.fields()
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&project).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&project, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete hard deletes a project and returns the deleted snapshot.
// Tasks that reference the project keep their project_id (no cascade).
func (r *GormProjectRepository) Delete(id uint64) (*models.Project, error) {
	var project models.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}
