package model

import (
	"fmt"

	"github.com/rs/xid"
)

type UserID string

func NewUserID() UserID {
	return UserID(xid.New().String())
}

type User interface {
	WithID[UserID]

	Username() string
	Email() string
	PasswordHash() string
}

type PersistedUser interface {
	User
	WithLifecycle
}

type BaseUser struct {
	id           UserID
	username     string
	email        string
	passwordHash string
}

// ID implements User.
func (u *BaseUser) ID() UserID {
	return u.id
}

// Username implements User.
func (u *BaseUser) Username() string {
	return u.username
}

// Email implements User.
func (u *BaseUser) Email() string {
	return u.email
}

// PasswordHash implements User.
func (u *BaseUser) PasswordHash() string {
	return u.passwordHash
}

var _ User = &BaseUser{}

func NewUser(username, email, passwordHash string) *BaseUser {
	return NewBaseUser(NewUserID(), username, email, passwordHash)
}

func NewBaseUser(id UserID, username, email, passwordHash string) *BaseUser {
	return &BaseUser{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
	}
}

func UserString(u User) string {
	return fmt.Sprintf("%s (%s)", u.Username(), u.ID())
}
