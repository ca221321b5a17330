package server

import (
	"log/slog"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/bornholm/scheduler/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run the scheduler http server, configured with SCHEDULER_* environment variables",
		Action: func(ctx *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			server, err := setup.NewHTTPServerFromConfig(ctx.Context, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			go setup.RunSessionPurger(ctx.Context, conf)

			slog.InfoContext(ctx.Context, "starting server", slog.String("address", conf.HTTP.Address))

			if err := server.Run(ctx.Context); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}
