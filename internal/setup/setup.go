package setup

import (
	"context"
	"sync"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes the result of factory for each configuration
// it is called with.
func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		mutex     sync.Mutex
		instances = map[*config.Config]T{}
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mutex.Lock()
		defer mutex.Unlock()

		if instance, exists := instances[conf]; exists {
			return instance, nil
		}

		instance, err := factory(ctx, conf)
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		instances[conf] = instance

		return instance, nil
	}
}
