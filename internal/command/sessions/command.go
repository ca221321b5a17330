package sessions

import (
	"fmt"

	"github.com/bornholm/scheduler/internal/config"
	"github.com/bornholm/scheduler/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Manage login sessions",
		Subcommands: []*cli.Command{
			{
				Name:  "purge",
				Usage: "Delete expired sessions from the database",
				Action: func(ctx *cli.Context) error {
					conf, err := config.Parse()
					if err != nil {
						return errors.Wrap(err, "could not parse config")
					}

					purged, err := setup.PurgeExpiredSessions(ctx.Context, conf)
					if err != nil {
						return errors.WithStack(err)
					}

					fmt.Fprintf(ctx.App.Writer, "%d expired session(s) purged\n", purged)

					return nil
				},
			},
		},
	}
}
