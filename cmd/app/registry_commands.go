package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/soulbound/cmd/app/commands"
	"github.com/allisson/soulbound/internal/app"
	"github.com/allisson/soulbound/internal/config"
	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
)

func getRegistryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add-issuer",
			Usage: "Authorize an issuer as the registry administrator",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "admin",
					Required: true,
					Usage:    "Administrator address performing the change",
				},
				&cli.StringFlag{
					Name:     "address",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Issuer address",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Issuer display name",
				},
				&cli.StringFlag{
					Name:     "organization",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Issuer organization",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   commands.FormatText,
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, registry, err := registryContainer(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunAddIssuer(
					ctx,
					registry,
					container.Logger(),
					os.Stdout,
					cmd.String("admin"),
					registryUseCase.IssuerInput{
						Address:      cmd.String("address"),
						Name:         cmd.String("name"),
						Organization: cmd.String("organization"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "remove-issuer",
			Usage: "Revoke the authorization of an issuer",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "admin",
					Required: true,
					Usage:    "Administrator address performing the change",
				},
				&cli.StringFlag{
					Name:     "address",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Issuer address",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, registry, err := registryContainer(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunRemoveIssuer(
					ctx,
					registry,
					container.Logger(),
					os.Stdout,
					cmd.String("admin"),
					cmd.String("address"),
				)
			},
		},
		{
			Name:  "issue-access-token",
			Usage: "Sign an API access token for an identity",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "subject",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Identity address the token acts as",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   commands.FormatText,
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())

				return commands.RunIssueAccessToken(
					container.TokenService(),
					container.Logger(),
					os.Stdout,
					cmd.String("subject"),
					cmd.String("format"),
				)
			},
		},
	}
}

// registryContainer builds a container and bootstraps the registry so that the configured
// administrator exists before the first change.
func registryContainer(ctx context.Context) (*app.Container, registryUseCase.RegistryUseCase, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	container := app.NewContainer(cfg)

	if err := container.BootstrapRegistry(ctx); err != nil {
		_ = container.Shutdown(ctx)
		return nil, nil, err
	}
	registry, err := container.RegistryUseCase()
	if err != nil {
		_ = container.Shutdown(ctx)
		return nil, nil, err
	}
	return container, registry, nil
}
