package handlers

import (
	"net/http"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/models"
	"realestate_backend/internal/services"
	"realestate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	userService services.UserService
	tokens      *auth.TokenManager
}

func NewAuthHandler(base *BaseHandler, userService services.UserService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		userService: userService,
		tokens:      tokens,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group := rg.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.GET("/me", requireAuth, h.Me)
		group.PUT("/me", requireAuth, h.UpdateMe)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.issueToken(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Login(c.Request.Context(), h.GetDB(c), req.Email, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.issueToken(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}
