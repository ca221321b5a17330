package model

import (
	"github.com/rs/xid"
)

type CommentID string

func NewCommentID() CommentID {
	return CommentID(xid.New().String())
}

// Comment is attached to exactly one schedule. Its owner is the author.
type Comment interface {
	WithID[CommentID]
	WithOwner

	ScheduleID() ScheduleID
	Content() string
}

type PersistedComment interface {
	Comment
	WithLifecycle
}

type BaseComment struct {
	id         CommentID
	owner      User
	scheduleID ScheduleID
	content    string
}

// ID implements Comment.
func (c *BaseComment) ID() CommentID {
	return c.id
}

// Owner implements Comment.
func (c *BaseComment) Owner() User {
	return c.owner
}

// ScheduleID implements Comment.
func (c *BaseComment) ScheduleID() ScheduleID {
	return c.scheduleID
}

// Content implements Comment.
func (c *BaseComment) Content() string {
	return c.content
}

var _ Comment = &BaseComment{}

func NewComment(owner User, scheduleID ScheduleID, content string) *BaseComment {
	return NewBaseComment(NewCommentID(), owner, scheduleID, content)
}

func NewBaseComment(id CommentID, owner User, scheduleID ScheduleID, content string) *BaseComment {
	return &BaseComment{
		id:         id,
		owner:      owner,
		scheduleID: scheduleID,
		content:    content,
	}
}
