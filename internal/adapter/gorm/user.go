package gorm

import (
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
)

type User struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt int64 `gorm:"autoCreateTime:nano"`
	UpdatedAt int64 `gorm:"autoUpdateTime:nano"`

	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`

	Schedules []*Schedule `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT;"`
	Comments  []*Comment  `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT;"`
	Sessions  []*Session  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

type wrappedUser struct {
	u *User
}

// ID implements model.User.
func (w *wrappedUser) ID() model.UserID {
	return model.UserID(w.u.ID)
}

// Username implements model.User.
func (w *wrappedUser) Username() string {
	return w.u.Username
}

// Email implements model.User.
func (w *wrappedUser) Email() string {
	return w.u.Email
}

// PasswordHash implements model.User.
func (w *wrappedUser) PasswordHash() string {
	return w.u.PasswordHash
}

// CreatedAt implements model.PersistedUser.
func (w *wrappedUser) CreatedAt() time.Time {
	return toTime(w.u.CreatedAt)
}

// UpdatedAt implements model.PersistedUser.
func (w *wrappedUser) UpdatedAt() time.Time {
	return toTime(w.u.UpdatedAt)
}

var _ model.PersistedUser = &wrappedUser{}

func fromUser(u model.User) *User {
	return &User{
		ID:           string(u.ID()),
		Username:     u.Username(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
	}
}
