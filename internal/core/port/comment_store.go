package port

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
)

type CommentStore interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.PersistedComment, error)

	// GetCommentByID returns ErrNotFound if the comment does not exist
	GetCommentByID(ctx context.Context, id model.CommentID) (model.PersistedComment, error)

	// QueryScheduleComments lists the comments of a schedule, newest first
	QueryScheduleComments(ctx context.Context, scheduleID model.ScheduleID) ([]model.PersistedComment, error)

	CountScheduleComments(ctx context.Context, scheduleID model.ScheduleID) (int64, error)

	// CountUserComments counts the comments authored by the given user
	CountUserComments(ctx context.Context, userID model.UserID) (int64, error)

	UpdateCommentContent(ctx context.Context, id model.CommentID, content string) (model.PersistedComment, error)

	DeleteComment(ctx context.Context, id model.CommentID) error
}
