package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerkit/layerkit/internal/handler"
	"github.com/layerkit/layerkit/internal/metrics"
	"github.com/layerkit/layerkit/internal/repository/memory"
	"github.com/layerkit/layerkit/internal/user"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	rec := metrics.NewInMemory()
	users := user.Build(user.Deps{Store: store, Metrics: rec, Logger: logger})

	srv := httptest.NewServer(newRouter(routerDeps{
		pages:   handler.New(users, logger),
		admin:   handler.NewAdminHandler(users, logger),
		health:  handler.NewHealthHandler(store, nil),
		metrics: handler.NewMetricsHandler(rec),
		isDev:   true,
		logger:  logger,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRouter_Pages(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path     string
		contains string
	}{
		{path: "/", contains: "<h1>Welcome</h1>"},
		{path: "/admin", contains: "<h1>Admin</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.contains)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
		})
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	resp, body = get(t, srv.URL+"/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"database":"ok"`)
}

func TestRouter_AdminAPIRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/admin/api/users", strings.NewReader(`{"email":"router@example.com"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created handler.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)

	resp, body := get(t, srv.URL+"/admin/api/users?email=router%40example.com")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"email":"router@example.com"`)

	_, body = get(t, srv.URL+"/metrics")
	assert.Contains(t, body, `layerkit_users_persisted_total{result="created"} 1`)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/does-not-exist")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")

	resp, err := http.Post(srv.URL+"/health", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
