package gorm

import (
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
)

type Session struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt int64 `gorm:"autoCreateTime:nano"`

	User     *User
	UserID   string `gorm:"index;not null"`
	Username string

	// Unix milliseconds
	ExpiresAt int64 `gorm:"index"`
}

type wrappedSession struct {
	s *Session
}

// ID implements model.Session.
func (w *wrappedSession) ID() model.SessionID {
	return model.SessionID(w.s.ID)
}

// UserID implements model.Session.
func (w *wrappedSession) UserID() model.UserID {
	return model.UserID(w.s.UserID)
}

// Username implements model.Session.
func (w *wrappedSession) Username() string {
	return w.s.Username
}

// ExpiresAt implements model.Session.
func (w *wrappedSession) ExpiresAt() time.Time {
	return time.UnixMilli(w.s.ExpiresAt)
}

var _ model.Session = &wrappedSession{}

func fromSession(s model.Session) *Session {
	return &Session{
		ID:        string(s.ID()),
		UserID:    string(s.UserID()),
		Username:  s.Username(),
		ExpiresAt: s.ExpiresAt().UnixMilli(),
	}
}
