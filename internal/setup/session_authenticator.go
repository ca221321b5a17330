package setup

import (
	"context"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/bornholm/scheduler/internal/http/middleware/authn/session"
	"github.com/pkg/errors"
)

var getSessionAuthenticatorFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*session.Authenticator, error) {
	sessionStore, err := getSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create session store from config")
	}

	authManager, err := getAuthManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return session.NewAuthenticator(sessionStore, conf.HTTP.Session.Name, authManager), nil
})
