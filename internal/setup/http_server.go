package setup

import (
	"context"
	"net/http"
	"time"

	"github.com/bornholm/scheduler/internal/config"
	httpServer "github.com/bornholm/scheduler/internal/http"
	"github.com/bornholm/scheduler/internal/http/handler/health"
	"github.com/bornholm/scheduler/internal/http/handler/metrics"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*httpServer.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	store, err := getGormStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create store from config")
	}

	options := []httpServer.OptionFunc{
		httpServer.WithAddress(conf.HTTP.Address),
		httpServer.WithBaseURL(conf.HTTP.BaseURL),
		httpServer.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		httpServer.WithMount("/api/", api),
		httpServer.WithMount("/healthz", health.NewHandler(store, 5*time.Second)),
	}

	if conf.Metrics.Enabled {
		var handler http.Handler = metrics.NewHandler()

		if auth := conf.Metrics.BasicAuth; auth.Username != "" || auth.Password != "" {
			handler = httpServer.BasicAuth(auth.Username, auth.Password)(handler)
		}

		options = append(options, httpServer.WithMount("/metrics", handler))
	}

	server := httpServer.NewServer(options...)

	return server, nil
}
