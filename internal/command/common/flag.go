package common

import (
	"net/url"

	"github.com/bornholm/scheduler/pkg/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramServer   = "server"
	paramEmail    = "email"
	paramPassword = "password"
)

var (
	flagServer = &cli.StringFlag{
		Name:    paramServer,
		Aliases: []string{"s"},
		Value:   "http://localhost:8080",
		EnvVars: []string{"SCHEDULER_CLI_SERVER"},
		Usage:   "Scheduler server base url",
	}
	flagEmail = &cli.StringFlag{
		Name:     paramEmail,
		Aliases:  []string{"e"},
		EnvVars:  []string{"SCHEDULER_CLI_EMAIL"},
		Usage:    "Account email",
		Required: true,
	}
	flagPassword = &cli.StringFlag{
		Name:     paramPassword,
		Aliases:  []string{"p"},
		EnvVars:  []string{"SCHEDULER_CLI_PASSWORD"},
		Usage:    "Account password",
		Required: true,
	}
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagServer,
		flagEmail,
		flagPassword,
	}, flags...)
}

// GetSchedulerClient returns a client logged in with the account given by
// the common flags.
func GetSchedulerClient(ctx *cli.Context) (*client.Client, error) {
	rawServerURL := ctx.String(paramServer)

	serverURL, err := url.Parse(rawServerURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	c := client.New(
		client.WithBaseURL(serverURL),
	)

	if _, err := c.Login(ctx.Context, ctx.String(paramEmail), ctx.String(paramPassword)); err != nil {
		return nil, errors.Wrap(err, "could not log in")
	}

	return c, nil
}
