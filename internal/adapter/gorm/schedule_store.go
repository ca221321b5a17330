package gorm

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const selectScheduleWithCommentCount = "schedules.*, (SELECT COUNT(*) FROM comments WHERE comments.schedule_id = schedules.id) AS comment_count"

// CreateSchedule implements port.ScheduleStore.
func (s *Store) CreateSchedule(ctx context.Context, schedule model.Schedule) (model.PersistedSchedule, error) {
	var created model.PersistedSchedule

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		gormSchedule := fromSchedule(schedule)

		if err := db.Omit(clause.Associations).Create(gormSchedule).Error; err != nil {
			return errors.WithStack(err)
		}

		loaded, err := getSchedule(db, schedule.ID())
		if err != nil {
			return errors.WithStack(err)
		}

		created = loaded

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return created, nil
}

// GetScheduleByID implements port.ScheduleStore.
func (s *Store) GetScheduleByID(ctx context.Context, id model.ScheduleID) (model.PersistedSchedule, error) {
	var schedule model.PersistedSchedule

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		loaded, err := getSchedule(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		schedule = loaded

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return schedule, nil
}

func getSchedule(db *gorm.DB, id model.ScheduleID) (*wrappedSchedule, error) {
	var schedule Schedule

	if err := db.Preload("Owner").First(&schedule, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &wrappedSchedule{&schedule}, nil
}

// QuerySchedules implements port.ScheduleStore.
func (s *Store) QuerySchedules(ctx context.Context, opts port.QuerySchedulesOptions) ([]model.PersistedSchedule, error) {
	var schedules []*Schedule

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := paginateSchedules(db.Model(&Schedule{}).Preload("Owner"), opts)

		if err := query.Find(&schedules).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedSchedules := make([]model.PersistedSchedule, 0, len(schedules))
	for _, s := range schedules {
		wrappedSchedules = append(wrappedSchedules, &wrappedSchedule{s})
	}

	return wrappedSchedules, nil
}

// QueryScheduleSummaries implements port.ScheduleStore.
func (s *Store) QueryScheduleSummaries(ctx context.Context, opts port.QuerySchedulesOptions) ([]*model.ScheduleSummary, int64, error) {
	var (
		schedules []*Schedule
		total     int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Model(&Schedule{}).Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		query := db.Model(&Schedule{}).
			Select(selectScheduleWithCommentCount).
			Preload("Owner")

		query = paginateSchedules(query, opts)

		if err := query.Find(&schedules).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	summaries := make([]*model.ScheduleSummary, 0, len(schedules))
	for _, s := range schedules {
		summaries = append(summaries, &model.ScheduleSummary{
			Schedule:     &wrappedSchedule{s},
			CommentCount: s.CommentCount,
		})
	}

	return summaries, total, nil
}

func paginateSchedules(query *gorm.DB, opts port.QuerySchedulesOptions) *gorm.DB {
	if opts.Page != nil {
		limit := 10
		if opts.Limit != nil {
			limit = *opts.Limit
		}
		query = query.Offset(*opts.Page * limit)
	}

	if opts.Limit != nil {
		query = query.Limit(*opts.Limit)
	}

	return query.Order("schedules.updated_at DESC").Order("schedules.id DESC")
}

// UpdateSchedule implements port.ScheduleStore.
func (s *Store) UpdateSchedule(ctx context.Context, id model.ScheduleID, updates port.ScheduleUpdates) (model.PersistedSchedule, error) {
	var schedule model.PersistedSchedule

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		changes := map[string]any{
			"updated_at": nowNano(),
		}

		if updates.Title != nil {
			changes["title"] = *updates.Title
		}

		if updates.Content != nil {
			changes["content"] = *updates.Content
		}

		result := db.Model(&Schedule{}).Where("id = ?", string(id)).Updates(changes)
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		loaded, err := getSchedule(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		schedule = loaded

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return schedule, nil
}

// DeleteScheduleWithComments implements port.ScheduleStore.
func (s *Store) DeleteScheduleWithComments(ctx context.Context, id model.ScheduleID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Delete(&Comment{}, "schedule_id = ?", string(id)).Error; err != nil {
			return errors.WithStack(err)
		}

		result := db.Delete(&Schedule{}, "id = ?", string(id))
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// CountUserSchedules implements port.ScheduleStore.
func (s *Store) CountUserSchedules(ctx context.Context, userID model.UserID) (int64, error) {
	var total int64

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Model(&Schedule{}).Where("owner_id = ?", string(userID)).Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return total, nil
}
