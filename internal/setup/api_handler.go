package setup

import (
	"context"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/bornholm/scheduler/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	userManager, err := getUserManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create user manager from config")
	}

	authManager, err := getAuthManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create auth manager from config")
	}

	scheduleManager, err := getScheduleManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create schedule manager from config")
	}

	commentManager, err := getCommentManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create comment manager from config")
	}

	sessions, err := getSessionAuthenticatorFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create session authenticator from config")
	}

	options := []api.OptionFunc{}

	if rl := conf.HTTP.RateLimit; rl.Enabled {
		options = append(options, api.WithThrottle(ratelimit.Middleware(
			ratelimit.WithTrustHeaders(rl.TrustHeaders),
			ratelimit.WithLimit(rl.Interval, rl.MaxBurst),
			ratelimit.WithCache(rl.CacheSize, rl.CacheTTL),
			ratelimit.WithOnLimited(api.HandleTooManyRequests),
		)))
	}

	handler := api.NewHandler(userManager, authManager, scheduleManager, commentManager, sessions, options...)

	return handler, nil
}
