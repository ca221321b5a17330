package port

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
)

type ScheduleStore interface {
	CreateSchedule(ctx context.Context, schedule model.Schedule) (model.PersistedSchedule, error)

	// GetScheduleByID returns ErrNotFound if the schedule does not exist
	GetScheduleByID(ctx context.Context, id model.ScheduleID) (model.PersistedSchedule, error)

	// QuerySchedules lists schedules, most recently modified first
	QuerySchedules(ctx context.Context, opts QuerySchedulesOptions) ([]model.PersistedSchedule, error)

	// QueryScheduleSummaries returns a page of schedules, most recently
	// modified first, each with its current comment count, and the total
	// number of schedules.
	QueryScheduleSummaries(ctx context.Context, opts QuerySchedulesOptions) ([]*model.ScheduleSummary, int64, error)

	// UpdateSchedule replaces title and content, returns ErrNotFound if the
	// schedule does not exist
	UpdateSchedule(ctx context.Context, id model.ScheduleID, updates ScheduleUpdates) (model.PersistedSchedule, error)

	// DeleteScheduleWithComments deletes every comment of the schedule then
	// the schedule itself, atomically. Returns ErrNotFound if the schedule
	// does not exist.
	DeleteScheduleWithComments(ctx context.Context, id model.ScheduleID) error

	// CountUserSchedules counts the schedules owned by the given user
	CountUserSchedules(ctx context.Context, userID model.UserID) (int64, error)
}

type QuerySchedulesOptions struct {
	// Zero based page index
	Page  *int
	Limit *int
}

type ScheduleUpdates struct {
	Title   *string
	Content *string
}
