package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mtamura/project-tracker-api/internal/constants"
	apierrors "github.com/mtamura/project-tracker-api/internal/errors"
	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/mtamura/project-tracker-api/internal/repository"
	"github.com/mtamura/project-tracker-api/internal/services"
	"gorm.io/gorm"
)

// RequireAuth resolves the bearer token to a user and stores it on the
// context. Missing credentials, a failed validation, and an unknown
// subject all terminate the request with 401; the gate itself has no
// side effects.
func RequireAuth(tokens *services.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			apierrors.InvalidCredentials(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.FindByEmail(claims.Subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.InvalidCredentials(c, "")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// RequireActiveUser rejects disabled accounts. Must run after RequireAuth.
func RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsActive {
			apierrors.InactiveUser(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperuser rejects users without the superuser flag. Must run
// after RequireAuth.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsSuperuser {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := value.(uint64)
	return id, ok
}

func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
