package api

import (
	"net/http"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/pkg/errors"
)

type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func toUser(u model.PersistedUser) User {
	return User{
		ID:         string(u.ID()),
		Username:   u.Username(),
		Email:      u.Email(),
		CreatedAt:  u.CreatedAt(),
		ModifiedAt: u.UpdatedAt(),
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userManager.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, toUser(user))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	ctx := r.Context()

	sess, err := h.authManager.Login(ctx, req.Email, req.Password, h.sessions.SessionID(r))
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	user, err := h.userManager.GetUser(ctx, sess.UserID())
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	if err := h.sessions.Save(w, r, sess.ID()); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, LoginResponse{
		User:      toUser(user),
		ExpiresAt: sess.ExpiresAt(),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.authManager.Logout(r.Context(), h.sessions.SessionID(r)); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	if err := h.sessions.Clear(w, r); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userManager.ListUsers(r.Context())
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	res := make([]User, 0, len(users))
	for _, u := range users {
		res = append(res, toUser(u))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(r.PathValue("userID"))

	user, err := h.userManager.GetUser(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, toUser(user))
}

type UpdateUserRequest struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	userID := model.UserID(r.PathValue("userID"))

	user, err := h.userManager.UpdateUser(r.Context(), identity(r), userID, service.UserUpdate{
		Username:        req.Username,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     model.OptionalFromPtr(req.NewPassword),
	})
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, toUser(user))
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	userID := model.UserID(r.PathValue("userID"))

	if err := h.userManager.ChangePassword(r.Context(), identity(r), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "password changed"})
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(r.PathValue("userID"))

	if err := h.userManager.DeleteUser(r.Context(), identity(r), userID); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	// Sessions of the user are gone with it
	if err := h.sessions.Clear(w, r); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "user deleted"})
}
