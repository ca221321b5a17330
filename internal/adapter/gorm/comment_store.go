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

// CreateComment implements port.CommentStore.
func (s *Store) CreateComment(ctx context.Context, comment model.Comment) (model.PersistedComment, error) {
	var created model.PersistedComment

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		gormComment := fromComment(comment)

		if err := db.Omit(clause.Associations).Create(gormComment).Error; err != nil {
			return errors.WithStack(err)
		}

		loaded, err := getComment(db, comment.ID())
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

// GetCommentByID implements port.CommentStore.
func (s *Store) GetCommentByID(ctx context.Context, id model.CommentID) (model.PersistedComment, error) {
	var comment model.PersistedComment

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		loaded, err := getComment(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		comment = loaded

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return comment, nil
}

func getComment(db *gorm.DB, id model.CommentID) (*wrappedComment, error) {
	var comment Comment

	if err := db.Preload("Owner").First(&comment, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &wrappedComment{&comment}, nil
}

// QueryScheduleComments implements port.CommentStore.
func (s *Store) QueryScheduleComments(ctx context.Context, scheduleID model.ScheduleID) ([]model.PersistedComment, error) {
	var comments []*Comment

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Model(&Comment{}).
			Preload("Owner").
			Where("schedule_id = ?", string(scheduleID)).
			Order("created_at DESC").
			Order("id DESC").
			Find(&comments).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedComments := make([]model.PersistedComment, 0, len(comments))
	for _, c := range comments {
		wrappedComments = append(wrappedComments, &wrappedComment{c})
	}

	return wrappedComments, nil
}

// CountScheduleComments implements port.CommentStore.
func (s *Store) CountScheduleComments(ctx context.Context, scheduleID model.ScheduleID) (int64, error) {
	return s.countComments(ctx, "schedule_id = ?", string(scheduleID))
}

// CountUserComments implements port.CommentStore.
func (s *Store) CountUserComments(ctx context.Context, userID model.UserID) (int64, error) {
	return s.countComments(ctx, "owner_id = ?", string(userID))
}

func (s *Store) countComments(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Model(&Comment{}).Where(query, args...).Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return total, nil
}

// UpdateCommentContent implements port.CommentStore.
func (s *Store) UpdateCommentContent(ctx context.Context, id model.CommentID, content string) (model.PersistedComment, error) {
	var comment model.PersistedComment

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Model(&Comment{}).Where("id = ?", string(id)).Updates(map[string]any{
			"content":    content,
			"updated_at": nowNano(),
		})
		if result.Error != nil {
			return errors.WithStack(result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		loaded, err := getComment(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		comment = loaded

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return comment, nil
}

// DeleteComment implements port.CommentStore.
func (s *Store) DeleteComment(ctx context.Context, id model.CommentID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		result := db.Delete(&Comment{}, "id = ?", string(id))
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
