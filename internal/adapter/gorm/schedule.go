package gorm

import (
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
)

type Schedule struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt int64 `gorm:"autoCreateTime:nano"`
	UpdatedAt int64 `gorm:"autoUpdateTime:nano;index"`

	Owner   *User
	OwnerID string `gorm:"index;not null"`

	Title   string `gorm:"not null"`
	Content string `gorm:"not null"`

	Comments []*Comment `gorm:"foreignKey:ScheduleID;constraint:OnDelete:RESTRICT;"`

	CommentCount int64 `gorm:"->;-:migration"`
}

type wrappedSchedule struct {
	s *Schedule
}

// ID implements model.Schedule.
func (w *wrappedSchedule) ID() model.ScheduleID {
	return model.ScheduleID(w.s.ID)
}

// Owner implements model.Schedule.
func (w *wrappedSchedule) Owner() model.User {
	if w.s.Owner == nil {
		return model.NewBaseUser(model.UserID(w.s.OwnerID), "", "", "")
	}

	return &wrappedUser{w.s.Owner}
}

// Title implements model.Schedule.
func (w *wrappedSchedule) Title() string {
	return w.s.Title
}

// Content implements model.Schedule.
func (w *wrappedSchedule) Content() string {
	return w.s.Content
}

// CreatedAt implements model.PersistedSchedule.
func (w *wrappedSchedule) CreatedAt() time.Time {
	return toTime(w.s.CreatedAt)
}

// UpdatedAt implements model.PersistedSchedule.
func (w *wrappedSchedule) UpdatedAt() time.Time {
	return toTime(w.s.UpdatedAt)
}

var _ model.PersistedSchedule = &wrappedSchedule{}

func fromSchedule(s model.Schedule) *Schedule {
	schedule := &Schedule{
		ID:      string(s.ID()),
		Title:   s.Title(),
		Content: s.Content(),
	}

	if owner := s.Owner(); owner != nil {
		schedule.OwnerID = string(owner.ID())
	}

	return schedule
}
