package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/layerkit/layerkit/internal/model"
	"github.com/layerkit/layerkit/internal/user"
)

// AdminHandler exposes the user facade as a JSON API under /admin/api.
type AdminHandler struct {
	users  user.Facade
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users user.Facade, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, logger: logger}
}

// UserResponse is the JSON form of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PersistUserRequest is the body of PUT /admin/api/users.
type PersistUserRequest struct {
	ID    int64  `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// LookupUser handles GET /admin/api/users?email={email}
func (h *AdminHandler) LookupUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeErrorJSON(w, http.StatusBadRequest, "MISSING_EMAIL", "query parameter 'email' is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
	defer cancel()

	u, err := h.users.FindOneByEmail(ctx, email)
	if err != nil {
		h.writeUserError(w, "find user", err)
		return
	}
	if u == nil {
		writeErrorJSON(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// PersistUser handles PUT /admin/api/users
// The user is matched by email first, then by id; unmatched users are created.
func (h *AdminHandler) PersistUser(w http.ResponseWriter, r *http.Request) {
	var req PersistUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "INVALID_JSON", "request body must be a JSON object")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
	defer cancel()

	u, err := h.users.PersistUser(ctx, &model.User{ID: req.ID, Email: req.Email})
	if err != nil {
		h.writeUserError(w, "persist user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *AdminHandler) writeUserError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidArgument):
		writeErrorJSON(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, user.ErrEmailExists):
		writeErrorJSON(w, http.StatusConflict, "EMAIL_EXISTS", "a user with this email already exists")
	default:
		h.logger.Error(op+" failed", "error", err)
		writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
