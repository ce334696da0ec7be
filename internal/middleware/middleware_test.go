package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/models"
	"realestate_backend/pkg/apperrors"
	"realestate_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type accountStore map[string]*models.User

func (s accountStore) GetByID(_ context.Context, _ *gorm.DB, userID string) (*models.User, error) {
	user, ok := s[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func activeUser(id string, role models.UserRole) *models.User {
	user := &models.User{Role: role, IsActive: true}
	user.ID = id
	return user
}

func newProtectedRouter(tokens *auth.TokenManager, accounts accountStore, policy func(models.UserRole) bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	handlers := []gin.HandlerFunc{AuthMiddleware(tokens, accounts)}
	if policy != nil {
		handlers = append(handlers, RequirePolicy(policy))
	}
	handlers = append(handlers, func(c *gin.Context) {
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": role})
	})
	r.GET("/protected", handlers...)
	return r
}

func serve(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	clk := testclock.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	tokens := auth.NewTokenManager("secret", time.Hour, clk)
	router := newProtectedRouter(tokens, accountStore{"user-1": activeUser("user-1", models.UserRoleRenter)}, nil)

	w := serve(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`)

	w = serve(router, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"INVALID_TOKEN"`)

	token, _, err := tokens.GenerateToken("user-1", models.UserRoleRenter)
	require.NoError(t, err)
	w = serve(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","role":"RENTER"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	clk.Advance(2 * time.Hour)
	w = serve(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ReloadsAccount(t *testing.T) {
	clk := testclock.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	tokens := auth.NewTokenManager("secret", time.Hour, clk)

	promoted := activeUser("user-1", models.UserRoleAgent)
	disabled := activeUser("user-2", models.UserRoleOwner)
	disabled.IsActive = false
	router := newProtectedRouter(tokens, accountStore{"user-1": promoted, "user-2": disabled}, nil)

	// The stored role wins over the one baked into the token.
	token, _, err := tokens.GenerateToken("user-1", models.UserRoleBuyer)
	require.NoError(t, err)
	w := serve(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","role":"AGENT"}`, w.Body.String())

	token, _, err = tokens.GenerateToken("user-2", models.UserRoleOwner)
	require.NoError(t, err)
	w = serve(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"ACCOUNT_DEACTIVATED"`)

	token, _, err = tokens.GenerateToken("deleted", models.UserRoleOwner)
	require.NoError(t, err)
	w = serve(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"INVALID_TOKEN"`)
}

func TestRequirePolicy(t *testing.T) {
	clk := testclock.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	tokens := auth.NewTokenManager("secret", time.Hour, clk)
	accounts := accountStore{
		"buyer": activeUser("buyer", models.UserRoleBuyer),
		"owner": activeUser("owner", models.UserRoleOwner),
	}
	router := newProtectedRouter(tokens, accounts, auth.CanApply)

	buyer, _, err := tokens.GenerateToken("buyer", models.UserRoleBuyer)
	require.NoError(t, err)
	owner, _, err := tokens.GenerateToken("owner", models.UserRoleOwner)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(router, buyer).Code)

	w := serve(router, owner)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestRequirePolicy_NoRoleInContext(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequirePolicy(auth.IsAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUserRole_AcceptsString(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(contextkeys.UserRoleKey, "AGENT")

	role, ok := GetUserRole(c)
	assert.True(t, ok)
	assert.Equal(t, models.UserRoleAgent, role)
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
