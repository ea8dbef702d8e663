package repository

import (
	"github.com/mtamura/project-tracker-api/internal/database"
	"github.com/mtamura/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users in insertion order
func (r *GormUserRepository) List(skip, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Scopes(database.Window(skip, limit)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies the non-nil change slots atomically and returns the
// refreshed row.
func (r *GormUserRepository) Update(id uint64, changes UserChanges) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if changes.Email != nil {
			updates["email"] = *changes.Email
		}
		if changes.FirstName != nil {
			updates["first_name"] = *changes.FirstName
		}
		if changes.LastName != nil {
			updates["last_name"] = *changes.LastName
		}
		if changes.HashedPassword != nil {
			updates["hashed_password"] = *changes.HashedPassword
		}
		if changes.IsActive != nil {
			updates["is_active"] = *changes.IsActive
		}
		if changes.IsSuperuser != nil {
			updates["is_superuser"] = *changes.IsSuperuser
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete hard deletes a user and returns the deleted snapshot
func (r *GormUserRepository) Delete(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
