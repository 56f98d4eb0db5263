package main

import (
	"fmt"
	"os"

	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/handlers/report"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/observability"
	"github.com/cosmo-clinic/billing-atlas/pkg/server"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/config"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/session"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Billing Atlas",
		RunE:  runServer,
	}

	defaultPath, _ := config.DefaultProfilesPath()

	rootCmd.Flags().StringVarP(&settingsPath, "config", "c", "",
		"Path to the settings file (default is ./atlas.yaml)")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", defaultPath,
		"Path to the profiles file (default is $HOME/.atlasrc)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger := observability.NewLogger(os.Stdout, settings.Log.Level, settings.Log.Format)
	ctx := logger.WithContext(cmd.Context())

	baseURL := settings.API.BaseURL
	var credentials *domain.Credentials
	if settings.Profile != "" {
		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		profile, err := registry.GetProfile(ctx, settings.Profile)
		if err != nil {
			return err
		}
		if profile.BaseURL != "" {
			baseURL = profile.BaseURL
		}
		creds := profile.Credentials()
		credentials = &creds
		logger.Info().Msgf("Using profile `%s` from `%s`.", profile, profilesPath)
	}

	clinic := client.NewClient(baseURL, client.WithTimeout(settings.API.Timeout))

	manager := session.NewManager(clinic)
	if credentials != nil {
		s, err := manager.Login(ctx, *credentials)
		if err != nil {
			return fmt.Errorf("failed to sign in: %w", err)
		}
		logger.Info().Msgf("Signed in as `%s` (%s).", s.Name, s.Role)
	} else {
		logger.Warn().Msg("no profile configured, notifications are unavailable")
	}

	header, err := export.LoadImage(settings.PDF.Header)
	if err != nil {
		return fmt.Errorf("failed to load pdf header: %w", err)
	}
	footer, err := export.LoadImage(settings.PDF.Footer)
	if err != nil {
		return fmt.Errorf("failed to load pdf footer: %w", err)
	}

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	handler := report.NewHandler(report.Options{
		Client:   clinic,
		Session:  manager,
		Renderer: export.PDFRenderer{Header: header, Footer: footer},
		Metrics:  metrics,
	})

	web := server.NewWebAPI(logger, server.Config{
		Addr: settings.Addr(),
		Dependencies: server.Dependencies{
			Handler: handler,
			Metrics: metrics,
		},
	})

	logger.Info().Msgf("clinic api at %s", baseURL)
	return web.Start()
}
