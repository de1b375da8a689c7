// Package handler provides HTTP request handlers.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/layerkit/layerkit/internal/user"
	"github.com/layerkit/layerkit/internal/view"
)

// lookupTimeout bounds a single facade call made while serving a request.
const lookupTimeout = 5 * time.Second

// Handler serves the HTML pages.
type Handler struct {
	users  user.Facade
	logger *slog.Logger
}

// New creates a new Handler instance.
func New(users user.Facade, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Home renders the public home page.
// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, r, h.logger, http.StatusOK, view.HomePage())
}

// AdminHome renders the admin home page. When the email query parameter is
// present the page also shows the matching user.
// GET /admin
func (h *Handler) AdminHome(w http.ResponseWriter, r *http.Request) {
	lookup := view.AdminLookup{Email: r.URL.Query().Get("email")}

	if lookup.Email != "" {
		ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
		defer cancel()

		u, err := h.users.FindOneByEmail(ctx, lookup.Email)
		if err != nil {
			h.logger.Error("admin lookup failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		lookup.Searched = true
		lookup.User = u
	}

	renderHTML(w, r, h.logger, http.StatusOK, view.AdminHomePage(lookup))
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorJSON(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorJSON(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

func renderHTML(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logger.Error("render page", "path", r.URL.Path, "error", err)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeErrorJSON writes a JSON error response.
func writeErrorJSON(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
