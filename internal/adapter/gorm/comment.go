package gorm

import (
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
)

type Comment struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt int64 `gorm:"autoCreateTime:nano;index"`
	UpdatedAt int64 `gorm:"autoUpdateTime:nano"`

	Owner   *User
	OwnerID string `gorm:"index;not null"`

	Schedule   *Schedule
	ScheduleID string `gorm:"index;not null"`

	Content string `gorm:"not null"`
}

type wrappedComment struct {
	c *Comment
}

// ID implements model.Comment.
func (w *wrappedComment) ID() model.CommentID {
	return model.CommentID(w.c.ID)
}

// Owner implements model.Comment.
func (w *wrappedComment) Owner() model.User {
	if w.c.Owner == nil {
		return model.NewBaseUser(model.UserID(w.c.OwnerID), "", "", "")
	}

	return &wrappedUser{w.c.Owner}
}

// ScheduleID implements model.Comment.
func (w *wrappedComment) ScheduleID() model.ScheduleID {
	return model.ScheduleID(w.c.ScheduleID)
}

// Content implements model.Comment.
func (w *wrappedComment) Content() string {
	return w.c.Content
}

// CreatedAt implements model.PersistedComment.
func (w *wrappedComment) CreatedAt() time.Time {
	return toTime(w.c.CreatedAt)
}

// UpdatedAt implements model.PersistedComment.
func (w *wrappedComment) UpdatedAt() time.Time {
	return toTime(w.c.UpdatedAt)
}

var _ model.PersistedComment = &wrappedComment{}

func fromComment(c model.Comment) *Comment {
	comment := &Comment{
		ID:         string(c.ID()),
		ScheduleID: string(c.ScheduleID()),
		Content:    c.Content(),
	}

	if owner := c.Owner(); owner != nil {
		comment.OwnerID = string(owner.ID())
	}

	return comment
}
