package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/middleware"
	"realestate_backend/internal/models"
	"realestate_backend/internal/validator"
	"realestate_backend/pkg/apperrors"
	"realestate_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB returns the *gorm.DB (pool or transaction) placed by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}
	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	return userID, true
}

// GetCaller returns the authenticated user's id and role.
func (h *BaseHandler) GetCaller(c *gin.Context) (string, models.UserRole, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return "", "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid role in context"))
		return "", "", false
	}
	return userID, role, true
}

// Authorize renders a permission error unless allowed is true.
func (h *BaseHandler) Authorize(c *gin.Context, allowed bool, err error, denied *apperrors.AppError) bool {
	if err != nil {
		h.HandleServiceError(c, err)
		return false
	}
	if !allowed {
		h.HandleServiceError(c, denied)
		return false
	}
	return true
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
