package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mtamura/project-tracker-api/internal/constants"
	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/mtamura/project-tracker-api/internal/repository"
	"github.com/mtamura/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles administrative user management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for an admin-created user.
type CreateUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	IsActive    bool
	IsSuperuser bool
}

// UpdateUserInput represents a partial user edit. Nil fields are left
// unchanged; a non-nil Password is re-hashed before storage.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	IsActive    *bool
	IsSuperuser *bool
}

// ListUsers returns users in insertion order.
func (s *UserService) ListUsers(skip, limit int) ([]models.User, error) {
	users, err := s.userRepo.List(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUser creates a user with admin-chosen flags.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:          email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: hashed,
		IsActive:       input.IsActive,
		IsSuperuser:    input.IsSuperuser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial edit to a user.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	changes := repository.UserChanges{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		IsActive:    input.IsActive,
		IsSuperuser: input.IsSuperuser,
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, fmt.Errorf("email is required")
		}
		if existing, err := s.userRepo.FindByEmail(email); err == nil && existing.ID != id {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		changes.Email = &email
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		changes.HashedPassword = &hashed
	}

	user, err := s.userRepo.Update(id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser hard deletes a user and returns the deleted snapshot.
func (s *UserService) DeleteUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}
