package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/authapi/internal/common"
	"github.com/tokenforge/authapi/internal/logging"
	"github.com/tokenforge/authapi/internal/server/users"
)

type fakeAuth struct {
	registerMsg string
	registerErr error

	loginResult *users.LoginResult
	loginErr    error

	serviceToken    string
	serviceTokenErr error
}

func (f *fakeAuth) Register(ctx context.Context, email, name, password string) (string, error) {
	return f.registerMsg, f.registerErr
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*users.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuth) GenerateServiceToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	return f.serviceToken, f.serviceTokenErr
}

func newTestServer(auth *fakeAuth) *Server {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(":0", logger, auth)
}

func doJSON(t *testing.T, s *Server, path string, body any) (*http.Response, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestRegisterEndpoint_Success(t *testing.T) {
	s := newTestServer(&fakeAuth{})

	resp, env := doJSON(t, s, "/api/auth/register", map[string]string{
		"email":    "a@x.com",
		"name":     "Alice",
		"password": "pw12345678",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.IsSuccess)
	assert.Empty(t, env.Message)
}

func TestRegisterEndpoint_RejectedByService(t *testing.T) {
	s := newTestServer(&fakeAuth{registerMsg: "email 'a@x.com' is already taken"})

	resp, env := doJSON(t, s, "/api/auth/register", map[string]string{
		"email":    "a@x.com",
		"name":     "Alice",
		"password": "pw12345678",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.IsSuccess)
	assert.Equal(t, "email 'a@x.com' is already taken", env.Message)
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"name": "Alice", "password": "pw12345678"}},
		{"malformed email", map[string]string{"email": "not-an-email", "name": "Alice", "password": "pw12345678"}},
		{"password too short", map[string]string{"email": "a@x.com", "name": "Alice", "password": "short"}},
		{"missing name", map[string]string{"email": "a@x.com", "password": "pw12345678"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeAuth{})
			resp, env := doJSON(t, s, "/api/auth/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, env.IsSuccess)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestRegisterEndpoint_InternalError(t *testing.T) {
	s := newTestServer(&fakeAuth{registerErr: errors.New("store down: dsn=postgres://secret")})

	resp, env := doJSON(t, s, "/api/auth/register", map[string]string{
		"email":    "a@x.com",
		"name":     "Alice",
		"password": "pw12345678",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", env.Message, "internal detail must not cross the boundary")
}

func TestLoginEndpoint_Success(t *testing.T) {
	s := newTestServer(&fakeAuth{loginResult: &users.LoginResult{
		User:  &users.UserDTO{ID: "u-1", Email: "a@x.com", Name: "Alice"},
		Token: "signed-token",
	}})

	resp, env := doJSON(t, s, "/api/auth/login", map[string]string{
		"username": "a@x.com",
		"password": "pw12345678",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.IsSuccess)

	result, ok := env.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "signed-token", result["token"])

	user, ok := result["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u-1", user["id"])
	assert.Equal(t, "a@x.com", user["email"])
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	s := newTestServer(&fakeAuth{loginResult: &users.LoginResult{}})

	resp, env := doJSON(t, s, "/api/auth/login", map[string]string{
		"username": "a@x.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.IsSuccess)
	assert.Equal(t, "username or password is incorrect", env.Message)
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	s := newTestServer(&fakeAuth{})

	resp, env := doJSON(t, s, "/api/auth/login", map[string]string{"username": "a@x.com"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.IsSuccess)
}

func TestServiceTokenEndpoint_Success(t *testing.T) {
	s := newTestServer(&fakeAuth{serviceToken: "svc-token"})

	resp, env := doJSON(t, s, "/api/auth/service-token", map[string]string{
		"client_id":     "machine-42",
		"client_secret": "machine-42-secret",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.IsSuccess)
	assert.Equal(t, "svc-token", env.Result)
}

func TestServiceTokenEndpoint_InvalidCredentials(t *testing.T) {
	s := newTestServer(&fakeAuth{serviceTokenErr: common.ErrInvalidClientCredentials})

	resp, env := doJSON(t, s, "/api/auth/service-token", map[string]string{
		"client_id":     "intruder",
		"client_secret": "intruder",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.IsSuccess)
	assert.Equal(t, "invalid client credentials", env.Message)
}

func TestServiceTokenEndpoint_SecretStoreDown(t *testing.T) {
	s := newTestServer(&fakeAuth{serviceTokenErr: common.ErrSecretUnavailable})

	resp, env := doJSON(t, s, "/api/auth/service-token", map[string]string{
		"client_id":     "machine-42",
		"client_secret": "machine-42-secret",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", env.Message)
}

func TestEndpoints_MalformedBody(t *testing.T) {
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/service-token"} {
		t.Run(path, func(t *testing.T) {
			s := newTestServer(&fakeAuth{})

			req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte("{not json")))
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.App().Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
