package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/soulbound/cmd/app/commands"
	"github.com/allisson/soulbound/internal/app"
	"github.com/allisson/soulbound/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server and the event relay",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "relay-events",
			Usage: "Deliver pending events to the configured publishers",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "once",
					Value: false,
					Usage: "Process a single batch and exit",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				relay, err := container.RelayUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunRelayEvents(ctx, relay, container.Logger(), cmd.Bool("once"))
			},
		},
	}
}
