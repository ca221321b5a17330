package api

import (
	"net/http"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/pkg/errors"
)

type Schedule struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func toSchedule(s model.PersistedSchedule) Schedule {
	res := Schedule{
		ID:         string(s.ID()),
		Title:      s.Title(),
		Content:    s.Content(),
		CreatedAt:  s.CreatedAt(),
		ModifiedAt: s.UpdatedAt(),
	}

	if owner := s.Owner(); owner != nil {
		res.UserID = string(owner.ID())
		res.Username = owner.Username()
	}

	return res
}

type ScheduleSummary struct {
	Schedule
	CommentCount int64 `json:"commentCount"`
}

type SchedulePageResponse struct {
	Content       []ScheduleSummary `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

type ScheduleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	schedule, err := h.scheduleManager.CreateSchedule(r.Context(), identity(r), req.Title, req.Content)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, toSchedule(schedule))
}

func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleManager.ListSchedules(r.Context())
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	res := make([]Schedule, 0, len(schedules))
	for _, s := range schedules {
		res = append(res, toSchedule(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleListSchedulesPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := getQueryPage(query, 1)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	size, err := getQuerySize(query, 10)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	result, err := h.scheduleManager.ListSchedulesPage(r.Context(), page, size)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	res := SchedulePageResponse{
		Content:       make([]ScheduleSummary, 0, len(result.Summaries)),
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.Total,
		TotalPages:    result.TotalPages,
	}

	for _, s := range result.Summaries {
		res.Content = append(res.Content, ScheduleSummary{
			Schedule:     toSchedule(s.Schedule),
			CommentCount: s.CommentCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))

	schedule, err := h.scheduleManager.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, toSchedule(schedule))
}

func (h *Handler) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := readJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))

	schedule, err := h.scheduleManager.UpdateSchedule(r.Context(), identity(r), scheduleID, req.Title, req.Content)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, toSchedule(schedule))
}

func (h *Handler) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := model.ScheduleID(r.PathValue("scheduleID"))

	if err := h.scheduleManager.DeleteSchedule(r.Context(), identity(r), scheduleID); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, MessageResponse{Message: "schedule deleted"})
}
