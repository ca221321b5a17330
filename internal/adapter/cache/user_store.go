package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bornholm/scheduler/internal/core/model"
	"github.com/bornholm/scheduler/internal/core/port"
)

// UserStore caches user lookups of the wrapped store. Entries are evicted
// on every write touching the user.
type UserStore struct {
	backend   port.UserStore
	userCache *MultiIndexCache[*CacheableUser]

	// Incremented on every eviction. A lookup only caches its result when no
	// eviction happened while it was fetching from the backend.
	generation uint64
	mutex      sync.Mutex
}

// GetUserByID implements [port.UserStore].
func (s *UserStore) GetUserByID(ctx context.Context, userID model.UserID) (model.PersistedUser, error) {
	return s.lookup(string(userID), func() (model.PersistedUser, error) {
		return s.backend.GetUserByID(ctx, userID)
	})
}

// FindUserByEmail implements [port.UserStore].
func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (model.PersistedUser, error) {
	return s.lookup(getUserEmailCacheKey(email), func() (model.PersistedUser, error) {
		return s.backend.FindUserByEmail(ctx, email)
	})
}

// FindUserByUsername implements [port.UserStore].
func (s *UserStore) FindUserByUsername(ctx context.Context, username string) (model.PersistedUser, error) {
	return s.lookup(getUserUsernameCacheKey(username), func() (model.PersistedUser, error) {
		return s.backend.FindUserByUsername(ctx, username)
	})
}

func (s *UserStore) lookup(key string, fetch func() (model.PersistedUser, error)) (model.PersistedUser, error) {
	if user, exists := s.userCache.Get(key); exists {
		return user, nil
	}

	s.mutex.Lock()
	generation := s.generation
	s.mutex.Unlock()

	user, err := fetch()
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.generation == generation {
		s.userCache.Add(NewCacheableUser(user))
	}

	return user, nil
}

func (s *UserStore) evict(userID model.UserID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.generation++
	s.userCache.Remove(string(userID))
}

// QueryUsers implements [port.UserStore].
func (s *UserStore) QueryUsers(ctx context.Context, opts port.QueryUsersOptions) ([]model.PersistedUser, error) {
	return s.backend.QueryUsers(ctx, opts)
}

// SaveUser implements [port.UserStore].
func (s *UserStore) SaveUser(ctx context.Context, user model.User) error {
	defer s.evict(user.ID())

	return s.backend.SaveUser(ctx, user)
}

// DeleteUser implements [port.UserStore].
func (s *UserStore) DeleteUser(ctx context.Context, userID model.UserID) error {
	defer s.evict(userID)

	return s.backend.DeleteUser(ctx, userID)
}

func NewUserStore(backend port.UserStore, size int, ttl time.Duration) *UserStore {
	return &UserStore{
		backend:   backend,
		userCache: NewMultiIndexCache[*CacheableUser](size, ttl),
	}
}

var _ port.UserStore = &UserStore{}
