package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/observability"
	"github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal"
	"github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal/commands"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.LoadSettings(os.Getenv("ATLAS_CONFIG"))
	if err != nil {
		return err
	}
	logger := observability.NewLogger(os.Stderr, settings.Log.Level, settings.Log.Format)
	ctx := logger.WithContext(context.Background())

	var profiles config.Registry
	if path, err := config.DefaultProfilesPath(); err == nil {
		profiles, err = config.NewRegistry(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			logger.Debug().Str("path", path).Msg("no profiles file")
		}
	}

	cli := terminal.NewCLI(terminal.Options{
		Env: &commands.Env{
			Settings: *settings,
			Profiles: profiles,
			NewClient: func(baseURL string) client.Client {
				return client.NewClient(baseURL, client.WithTimeout(settings.API.Timeout))
			},
			Profile: settings.Profile,
		},
		Output: os.Stdout,
	})

	return cli.Execute(ctx)
}
