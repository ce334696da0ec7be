package auth

import (
	"errors"
	"fmt"
	"time"

	"realestate_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string          `json:"user_id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenManager(secret string, ttl time.Duration, clk clock.Clock) *TokenManager {
	if clk == nil {
		clk = clock.WallClock
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, clock: clk}
}

func (m *TokenManager) GenerateToken(userID string, role models.UserRole) (string, time.Time, error) {
	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
