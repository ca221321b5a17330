package model

import (
	"github.com/rs/xid"
)

type ScheduleID string

func NewScheduleID() ScheduleID {
	return ScheduleID(xid.New().String())
}

type Schedule interface {
	WithID[ScheduleID]
	WithOwner

	Title() string
	Content() string
}

type PersistedSchedule interface {
	Schedule
	WithLifecycle
}

// ScheduleSummary is the paginated view of a schedule, with the number of
// comments attached to it at query time.
type ScheduleSummary struct {
	Schedule     PersistedSchedule
	CommentCount int64
}

type BaseSchedule struct {
	id      ScheduleID
	owner   User
	title   string
	content string
}

// ID implements Schedule.
func (s *BaseSchedule) ID() ScheduleID {
	return s.id
}

// Owner implements Schedule.
func (s *BaseSchedule) Owner() User {
	return s.owner
}

// Title implements Schedule.
func (s *BaseSchedule) Title() string {
	return s.title
}

// Content implements Schedule.
func (s *BaseSchedule) Content() string {
	return s.content
}

var _ Schedule = &BaseSchedule{}

func NewSchedule(owner User, title, content string) *BaseSchedule {
	return NewBaseSchedule(NewScheduleID(), owner, title, content)
}

func NewBaseSchedule(id ScheduleID, owner User, title, content string) *BaseSchedule {
	return &BaseSchedule{
		id:      id,
		owner:   owner,
		title:   title,
		content: content,
	}
}
