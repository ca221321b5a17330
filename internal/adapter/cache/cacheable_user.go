package cache

import (
	"strings"

	"github.com/bornholm/scheduler/internal/core/model"
)

type CacheableUser struct {
	model.PersistedUser
}

// CacheKeys implements [Cacheable].
func (u *CacheableUser) CacheKeys() []string {
	return []string{
		string(u.ID()),
		getUserEmailCacheKey(u.Email()),
		getUserUsernameCacheKey(u.Username()),
	}
}

func NewCacheableUser(user model.PersistedUser) *CacheableUser {
	return &CacheableUser{user}
}

var (
	_ model.PersistedUser = &CacheableUser{}
	_ Cacheable           = &CacheableUser{}
)

func getUserEmailCacheKey(email string) string {
	return getCompositeCacheKey("email", email)
}

func getUserUsernameCacheKey(username string) string {
	return getCompositeCacheKey("username", username)
}

func getCompositeCacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}
