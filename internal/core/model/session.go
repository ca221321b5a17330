package model

import (
	"time"
)

type SessionID string

type Session interface {
	WithID[SessionID]

	UserID() UserID
	Username() string
	ExpiresAt() time.Time
}

type BaseSession struct {
	id        SessionID
	userID    UserID
	username  string
	expiresAt time.Time
}

// ID implements Session.
func (s *BaseSession) ID() SessionID {
	return s.id
}

// UserID implements Session.
func (s *BaseSession) UserID() UserID {
	return s.userID
}

// Username implements Session.
func (s *BaseSession) Username() string {
	return s.username
}

// ExpiresAt implements Session.
func (s *BaseSession) ExpiresAt() time.Time {
	return s.expiresAt
}

var _ Session = &BaseSession{}

func NewSession(id SessionID, user User, expiresAt time.Time) *BaseSession {
	return &BaseSession{
		id:        id,
		userID:    user.ID(),
		username:  user.Username(),
		expiresAt: expiresAt,
	}
}

func IsSessionExpired(s Session, now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}
