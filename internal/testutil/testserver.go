package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"realestate_backend/internal/app"
	"realestate_backend/internal/config"
	"realestate_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const TestJWTSecret = "test_secret_key_for_handler_tests"

type TestServer struct {
	*Env
	Server *httptest.Server
	Config *config.Config
}

// NewTestServer starts the full router against a fresh Env.
func NewTestServer(t *testing.T, strict bool) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := NewEnv(t)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.Port = 8080
	cfg.Database.DSN = "sqlite-in-memory"
	cfg.JWT.Secret = TestJWTSecret
	cfg.JWT.TTL = 60
	cfg.Workflow.StrictTransitions = strict

	server := httptest.NewServer(app.SetupRouter(cfg, env.DB, env.Clock))
	t.Cleanup(server.Close)

	return &TestServer{Env: env, Server: server, Config: cfg}
}

// SendRequest sends body as JSON and returns the response with its body as a string.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "build request")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "send request")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "read response body")
	return res, string(resBody)
}

// Login authenticates through the API and returns the access token.
func (ts *TestServer) Login(t *testing.T, email, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login failed: %s", body)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)
	return loginResponse.Token
}

// CreateAndLoginUser inserts a user with role and logs them in.
func (ts *TestServer) CreateAndLoginUser(t *testing.T, role models.UserRole) (string, *models.User) {
	t.Helper()
	user := ts.CreateUser(t, role)
	return ts.Login(t, user.Email, DefaultPassword), user
}

// Decode unmarshals a response body into out.
func Decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "decode body: %s", body)
}
