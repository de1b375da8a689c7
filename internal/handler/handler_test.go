package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/layerkit/layerkit/internal/model"
	"github.com/layerkit/layerkit/internal/repository/memory"
	"github.com/layerkit/layerkit/internal/user"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFacade(t *testing.T) user.Facade {
	t.Helper()
	return user.Build(user.Deps{Store: memory.New(), Logger: discardLogger()})
}

func TestHandler_Home(t *testing.T) {
	h := New(newTestFacade(t), discardLogger())

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("expected html content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Welcome</h1>") {
		t.Errorf("home page body missing heading: %s", rec.Body.String())
	}
}

func TestHandler_AdminHome(t *testing.T) {
	facade := newTestFacade(t)
	if _, err := facade.PersistUser(context.Background(), &model.User{Email: "admin@example.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	h := New(facade, discardLogger())

	tests := []struct {
		name     string
		target   string
		contains string
		excludes string
	}{
		{name: "no query", target: "/admin", contains: "<h1>Admin</h1>", excludes: "<table>"},
		{name: "known email", target: "/admin?email=admin%40example.com", contains: "<td>admin@example.com</td>"},
		{name: "unknown email", target: "/admin?email=nobody%40example.com", contains: "No user with email nobody@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.AdminHome(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
			if tt.excludes != "" && strings.Contains(body, tt.excludes) {
				t.Errorf("body unexpectedly contains %q", tt.excludes)
			}
		})
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New(nil, discardLogger())

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Error != "resource not found" || response.Code != "NOT_FOUND" {
		t.Errorf("unexpected error response: %+v", response)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New(nil, discardLogger())

	rec := httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Error != "method not allowed" {
		t.Errorf("unexpected error message: %s", response.Error)
	}
}
