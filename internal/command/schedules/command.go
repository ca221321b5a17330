package schedules

import (
	"fmt"
	"text/tabwriter"

	"github.com/bornholm/scheduler/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagPage    = "page"
	flagSize    = "size"
	flagTitle   = "title"
	flagContent = "content"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "schedules",
		Usage: "Browse and publish schedules on a scheduler server",
		Subcommands: []*cli.Command{
			listCommand(),
			createCommand(),
			commentsCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List schedules, most recently updated first",
		Flags: common.WithCommonFlags(
			&cli.IntFlag{
				Name:  flagPage,
				Value: 1,
				Usage: "Page number, starting at 1",
			},
			&cli.IntFlag{
				Name:  flagSize,
				Value: 10,
				Usage: "Page size",
			},
		),
		Action: func(ctx *cli.Context) error {
			client, err := common.GetSchedulerClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			page, err := client.ListSchedules(ctx.Context, ctx.Int(flagPage), ctx.Int(flagSize))
			if err != nil {
				return errors.WithStack(err)
			}

			w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCOMMENTS\tMODIFIED")
			for _, s := range page.Content {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Title, s.Username, s.CommentCount, s.ModifiedAt.Format("2006-01-02 15:04"))
			}

			if err := w.Flush(); err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintf(ctx.App.Writer, "\npage %d/%d (%d schedules)\n", page.Page, page.TotalPages, page.TotalElements)

			return nil
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Publish a new schedule",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:     flagTitle,
				Aliases:  []string{"t"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagContent,
				Aliases:  []string{"c"},
				Required: true,
			},
		),
		Action: func(ctx *cli.Context) error {
			client, err := common.GetSchedulerClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			schedule, err := client.CreateSchedule(ctx.Context, ctx.String(flagTitle), ctx.String(flagContent))
			if err != nil {
				return errors.WithStack(err)
			}

			fmt.Fprintln(ctx.App.Writer, schedule.ID)

			return nil
		},
	}
}

func commentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "comments",
		Usage:     "List the comments of a schedule, newest first",
		ArgsUsage: "<schedule-id>",
		Flags:     common.WithCommonFlags(),
		Action: func(ctx *cli.Context) error {
			scheduleID := ctx.Args().First()
			if scheduleID == "" {
				return errors.New("missing schedule id")
			}

			client, err := common.GetSchedulerClient(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			comments, err := client.ListComments(ctx.Context, scheduleID)
			if err != nil {
				return errors.WithStack(err)
			}

			for _, c := range comments {
				fmt.Fprintf(ctx.App.Writer, "[%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Username, c.Content)
			}

			return nil
		},
	}
}
