package setup

import (
	"context"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/bornholm/scheduler/internal/core/service"
	"github.com/pkg/errors"
)

var getPasswordHasherFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (service.PasswordHasher, error) {
	return service.NewBcryptHasher(conf.Storage.Database.BcryptCost), nil
})

var getUserManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.UserManager, error) {
	store, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := getUserStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	hasher, err := getPasswordHasherFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewUserManager(store, users, store, store, store, hasher), nil
})

var getAuthManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.AuthManager, error) {
	store, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := getUserStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	hasher, err := getPasswordHasherFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	authManager, err := service.NewAuthManager(users, store, hasher,
		service.WithAuthManagerSessionTTL(conf.HTTP.Session.TTL),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authManager, nil
})

var getScheduleManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.ScheduleManager, error) {
	store, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := getUserStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewScheduleManager(store, users, store, store), nil
})

var getCommentManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.CommentManager, error) {
	store, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := getUserStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewCommentManager(store, users, store, store), nil
})
