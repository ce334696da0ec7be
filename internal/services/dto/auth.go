package dto

import (
	"time"

	"realestate_backend/internal/models"
)

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	Phone    string          `json:"phone" validate:"omitempty,max=30"`
	Role     models.UserRole `json:"role" validate:"required,is-registrable-role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user"`
}
