package middleware

import (
	"context"
	"strings"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"
	"realestate_backend/pkg/apperrors"
	"realestate_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountLookup loads the account a token was issued for.
type AccountLookup interface {
	GetByID(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)
}

// AuthMiddleware verifies the bearer token, reloads the account and stores the
// caller's id and stored role. Deactivated accounts are refused even while
// their token is still valid. Must run after DBMiddleware.
func AuthMiddleware(tokens *auth.TokenManager, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		ctx := c.Request.Context()
		user, err := accounts.GetByID(ctx, requestDB(c), claims.UserID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
				return
			}
			apperrors.HandleError(c, err)
			return
		}
		if !user.IsActive {
			logger.CtxWarn(ctx, "request rejected: account deactivated", "user_id", user.ID)
			apperrors.HandleError(c, apperrors.ErrAccountDeactivated)
			return
		}

		c.Set(contextkeys.UserIDKey, user.ID)
		c.Set(contextkeys.UserRoleKey, user.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, user.ID))
		c.Next()
	}
}

// RequirePolicy admits callers whose role satisfies policy. Must run after AuthMiddleware.
func RequirePolicy(policy func(models.UserRole) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !policy(role) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func requestDB(c *gin.Context) *gorm.DB {
	db, _ := c.Get(string(contextkeys.DBContextKey))
	gormDB, _ := db.(*gorm.DB)
	return gormDB
}

func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	val, exists := c.Get(contextkeys.UserRoleKey)
	if !exists {
		return "", false
	}
	switch role := val.(type) {
	case models.UserRole:
		return role, true
	case string:
		return models.UserRole(role), true
	default:
		return "", false
	}
}
