package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/client"
	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/observability"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/config"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/interval"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/report"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/session"
	"github.com/rs/zerolog"
)

// Env resolves the collaborators of a command from settings and the root
// flags.
type Env struct {
	Settings  config.Settings
	Profiles  config.Registry
	NewClient func(baseURL string) client.Client
	Metrics   *observability.Metrics
	Now       func() time.Time

	Profile string
	BaseURL string
}

var errNoProfiles = errors.New("no profiles file loaded")

func (e *Env) profile(ctx context.Context) (domain.ConfigProfile, bool, error) {
	if e.Profile == "" {
		return domain.ConfigProfile{}, false, nil
	}
	if e.Profiles == nil {
		return domain.ConfigProfile{}, false, fmt.Errorf("profile %s: %w", e.Profile, errNoProfiles)
	}
	p, err := e.Profiles.GetProfile(ctx, e.Profile)
	if err != nil {
		return domain.ConfigProfile{}, false, err
	}
	return p, true, nil
}

// Client talks to --base-url, else the profile's base_url, else api.base_url.
func (e *Env) Client(ctx context.Context) (client.Client, error) {
	baseURL := e.BaseURL
	if baseURL == "" {
		p, ok, err := e.profile(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			baseURL = p.BaseURL
		}
	}
	if baseURL == "" {
		baseURL = e.Settings.API.BaseURL
	}
	zerolog.Ctx(ctx).Debug().Str("base_url", baseURL).Msg("using clinic api")
	return e.NewClient(baseURL), nil
}

// SignIn logs in with the credentials of the selected profile.
func (e *Env) SignIn(ctx context.Context, c client.Client) (*session.Manager, domain.Session, error) {
	p, ok, err := e.profile(ctx)
	if err != nil {
		return nil, domain.Session{}, err
	}
	if !ok {
		return nil, domain.Session{}, fmt.Errorf("a profile is required: %w", domain.ErrNotLoggedIn)
	}
	m := session.NewManager(c)
	s, err := m.Login(ctx, p.Credentials())
	if err != nil {
		return nil, domain.Session{}, err
	}
	return m, s, nil
}

func (e *Env) Fetcher(c client.Client) *report.Fetcher {
	return report.NewFetcher(c, report.NewDefaultRegistry(), report.WithObserver(e.Metrics))
}

// Sink picks the export destination: S3 when requested, stdout for "-",
// otherwise a directory.
func (e *Env) Sink(ctx context.Context, out string, toS3 bool, stdout io.Writer) (export.Sink, error) {
	if toS3 {
		if e.Settings.S3.Bucket == "" {
			return nil, errors.New("s3.bucket is not configured")
		}
		cfg, err := export.LoadAWSConfig(ctx, e.Settings.S3.Profile, e.Settings.S3.Region)
		if err != nil {
			return nil, err
		}
		return export.NewS3SinkFromConfig(cfg, e.Settings.S3.Bucket, e.Settings.S3.Prefix), nil
	}
	if out == "-" {
		return export.WriterSink{W: stdout}, nil
	}
	if out == "" {
		out = e.Settings.Export.Dir
	}
	return export.DirSink{Dir: out}, nil
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// date parses s, defaulting to today.
func (e *Env) date(s string) (time.Time, error) {
	if s == "" {
		return interval.ParseDate(interval.Format(e.now()))
	}
	return interval.ParseDate(s)
}
