package service

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
	"github.com/bornholm/scheduler/internal/metrics"
	"github.com/pkg/errors"
)

type CommentManager struct {
	transactor port.Transactor
	users      port.UserStore
	schedules  port.ScheduleStore
	comments   port.CommentStore
}

func (m *CommentManager) CreateComment(ctx context.Context, identity model.Identity, scheduleID model.ScheduleID, content string) (model.PersistedComment, error) {
	if err := validateComment(content); err != nil {
		return nil, err
	}

	var comment model.PersistedComment

	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		author, err := m.users.GetUserByID(ctx, identity.UserID)
		if err != nil {
			return translateNotFound(err, ErrUserNotFound)
		}

		if _, err := m.schedules.GetScheduleByID(ctx, scheduleID); err != nil {
			return translateNotFound(err, ErrScheduleNotFound)
		}

		comment, err = m.comments.CreateComment(ctx, model.NewComment(author, scheduleID, content))
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	metrics.CreatedComments.Inc()

	return comment, nil
}

// ListComments returns the comments of the schedule, newest first.
func (m *CommentManager) ListComments(ctx context.Context, scheduleID model.ScheduleID) ([]model.PersistedComment, error) {
	if _, err := m.schedules.GetScheduleByID(ctx, scheduleID); err != nil {
		return nil, translateNotFound(err, ErrScheduleNotFound)
	}

	comments, err := m.comments.QueryScheduleComments(ctx, scheduleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return comments, nil
}

func (m *CommentManager) UpdateComment(ctx context.Context, identity model.Identity, scheduleID model.ScheduleID, commentID model.CommentID, content string) (model.PersistedComment, error) {
	if err := validateComment(content); err != nil {
		return nil, err
	}

	var comment model.PersistedComment

	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		if _, err := m.getOwnComment(ctx, identity, scheduleID, commentID); err != nil {
			return errors.WithStack(err)
		}

		updated, err := m.comments.UpdateCommentContent(ctx, commentID, content)
		if err != nil {
			return translateNotFound(err, ErrCommentNotFound)
		}

		comment = updated

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return comment, nil
}

func (m *CommentManager) DeleteComment(ctx context.Context, identity model.Identity, scheduleID model.ScheduleID, commentID model.CommentID) error {
	err := m.transactor.Transact(ctx, func(ctx context.Context) error {
		if _, err := m.getOwnComment(ctx, identity, scheduleID, commentID); err != nil {
			return errors.WithStack(err)
		}

		if err := m.comments.DeleteComment(ctx, commentID); err != nil {
			return translateNotFound(err, ErrCommentNotFound)
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.DeletedComments.Inc()

	return nil
}

// getOwnComment checks, in this order, that the comment exists, that it
// belongs to the schedule and that it was authored by identity.
func (m *CommentManager) getOwnComment(ctx context.Context, identity model.Identity, scheduleID model.ScheduleID, commentID model.CommentID) (model.PersistedComment, error) {
	comment, err := m.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, translateNotFound(err, ErrCommentNotFound)
	}

	if comment.ScheduleID() != scheduleID {
		return nil, errors.WithStack(ErrScheduleMismatch)
	}

	if !identity.Owns(comment) {
		return nil, errors.WithStack(ErrForbidden)
	}

	return comment, nil
}

func validateComment(content string) error {
	return validateInput(commentInput{Content: content})
}

func NewCommentManager(transactor port.Transactor, users port.UserStore, schedules port.ScheduleStore, comments port.CommentStore) *CommentManager {
	return &CommentManager{
		transactor: transactor,
		users:      users,
		schedules:  schedules,
		comments:   comments,
	}
}
