package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const ProfilesFile = ".atlasrc"

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath is ~/.atlasrc.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ProfilesFile), nil
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.ConfigProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.ConfigProfile{}, fmt.Errorf("profile %s not found", name)
	}

	tag, err := parseLoginTag(section.Key("login_as").MustString(string(domain.DoctorLogin)))
	if err != nil {
		return domain.ConfigProfile{}, fmt.Errorf("profile %s: %w", name, err)
	}

	return domain.ConfigProfile{
		Name:     name,
		BaseURL:  section.Key("base_url").String(),
		Username: section.Key("username").String(),
		Password: section.Key("password").String(),
		LoginAs:  tag,
	}, nil
}

func parseLoginTag(s string) (domain.LoginTag, error) {
	switch tag := domain.LoginTag(s); tag {
	case domain.DoctorLogin, domain.PharmacistLogin, domain.ReceptionistLogin:
		return tag, nil
	}
	return "", fmt.Errorf("unknown login_as %q", s)
}
