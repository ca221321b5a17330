package service

import (
	"context"
	"log/slog"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/bornholm/scheduler/internal/metrics"
	"github.com/pkg/errors"
)

type ScheduleManager struct {
	transactor port.Transactor
	users      port.UserStore
	schedules  port.ScheduleStore
	comments   port.CommentStore
}

type SchedulePage struct {
	Summaries []*model.ScheduleSummary
	// One based page number
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

func (m *ScheduleManager) CreateSchedule(ctx context.Context, identity model.Identity, title, content string) (model.PersistedSchedule, error) {
	if err := validateSchedule(title, content); err != nil {
		return nil, err
	}

	var schedule model.PersistedSchedule

	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		owner, err := m.users.GetUserByID(ctx, identity.UserID)
		if err != nil {
			return translateNotFound(err, ErrUserNotFound)
		}

		schedule, err = m.schedules.CreateSchedule(ctx, model.NewSchedule(owner, title, content))
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	metrics.CreatedSchedules.Inc()

	return schedule, nil
}

func (m *ScheduleManager) GetSchedule(ctx context.Context, id model.ScheduleID) (model.PersistedSchedule, error) {
	schedule, err := m.schedules.GetScheduleByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrScheduleNotFound)
	}

	return schedule, nil
}

func (m *ScheduleManager) ListSchedules(ctx context.Context) ([]model.PersistedSchedule, error) {
	schedules, err := m.schedules.QuerySchedules(ctx, port.QuerySchedulesOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return schedules, nil
}

// ListSchedulesPage returns the given one based page of schedule summaries,
// most recently modified first.
func (m *ScheduleManager) ListSchedulesPage(ctx context.Context, page, size int) (*SchedulePage, error) {
	if err := validateInput(pageInput{Page: page, Size: size}); err != nil {
		return nil, err
	}

	pageIndex := page - 1

	summaries, total, err := m.schedules.QueryScheduleSummaries(ctx, port.QuerySchedulesOptions{
		Page:  &pageIndex,
		Limit: &size,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &SchedulePage{
		Summaries:  summaries,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
	}, nil
}

func (m *ScheduleManager) UpdateSchedule(ctx context.Context, identity model.Identity, id model.ScheduleID, title, content string) (model.PersistedSchedule, error) {
	if err := validateSchedule(title, content); err != nil {
		return nil, err
	}

	var schedule model.PersistedSchedule

	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		if _, err := m.getOwnSchedule(ctx, identity, id); err != nil {
			return errors.WithStack(err)
		}

		updated, err := m.schedules.UpdateSchedule(ctx, id, port.ScheduleUpdates{
			Title:   &title,
			Content: &content,
		})
		if err != nil {
			return translateNotFound(err, ErrScheduleNotFound)
		}

		schedule = updated

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return schedule, nil
}

// DeleteSchedule deletes the schedule and all of its comments in a single
// transaction.
func (m *ScheduleManager) DeleteSchedule(ctx context.Context, identity model.Identity, id model.ScheduleID) error {
	var deletedComments int64

	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		if _, err := m.getOwnSchedule(ctx, identity, id); err != nil {
			return errors.WithStack(err)
		}

		count, err := m.comments.CountScheduleComments(ctx, id)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := m.schedules.DeleteScheduleWithComments(ctx, id); err != nil {
			return translateNotFound(err, ErrScheduleNotFound)
		}

		deletedComments = count

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.DeletedSchedules.Inc()
	metrics.DeletedComments.Add(float64(deletedComments))

	slog.DebugContext(ctx, "schedule deleted", slog.String("schedule", string(id)), slog.Int64("comments", deletedComments))

	return nil
}

func (m *ScheduleManager) getOwnSchedule(ctx context.Context, identity model.Identity, id model.ScheduleID) (model.PersistedSchedule, error) {
	schedule, err := m.schedules.GetScheduleByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrScheduleNotFound)
	}

	if !identity.Owns(schedule) {
		return nil, errors.WithStack(ErrForbidden)
	}

	return schedule, nil
}

func validateSchedule(title, content string) error {
	return validateInput(scheduleInput{Title: title, Content: content})
}

func NewScheduleManager(transactor port.Transactor, users port.UserStore, schedules port.ScheduleStore, comments port.CommentStore) *ScheduleManager {
	return &ScheduleManager{
		transactor: transactor,
		users:      users,
		schedules:  schedules,
		comments:   comments,
	}
}
