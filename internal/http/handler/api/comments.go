package api

import (
	"net/http"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/pkg/errors"
)

type Comment struct {
	ID         string    `json:"id"`
	ScheduleID string    `json:"scheduleId"`
	Content    string    `json:"content"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func toComment(c model.PersistedComment) Comment {
	res := Comment{
		ID:         string(c.ID()),
		ScheduleID: string(c.ScheduleID()),
		Content:    c.Content(),
		CreatedAt:  c.CreatedAt(),
		ModifiedAt: c.UpdatedAt(),
	}

	if owner := c.Owner(); owner != nil {
		res.UserID = string(owner.ID())
		res.Username = owner.Username()
	}

	return res
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))

	comment, err := h.commentManager.CreateComment(r.Context(), identity(r), scheduleID, req.Content)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, toComment(comment))
}

func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))

	comments, err := h.commentManager.ListComments(r.Context(), scheduleID)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	res := make([]Comment, 0, len(comments))
	for _, c := range comments {
		res = append(res, toComment(c))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))
	commentID := model.CommentID(r.PathValue("commentID"))

	comment, err := h.commentManager.UpdateComment(r.Context(), identity(r), scheduleID, commentID, req.Content)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, toComment(comment))
}

func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))
	commentID := model.CommentID(r.PathValue("commentID"))

	if err := h.commentManager.DeleteComment(r.Context(), identity(r), scheduleID, commentID); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "comment deleted"})
}
