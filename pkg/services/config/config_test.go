package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profiles = `
[clinic]
base_url = http://clinic.local:8000
username = asha
password = secret
login_as = PharmacistLogin

[front-desk]
username = ravi
password = pw
login_as = ReceptionistLogin

[doctor]
username = dr

[broken]
username = x
login_as = AdminLogin
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry(t *testing.T) {
	registry, err := NewRegistry(writeFile(t, ".atlasrc", profiles))
	require.NoError(t, err)
	ctx := context.Background()

	names, err := registry.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"clinic", "front-desk", "doctor", "broken"}, names)

	p, err := registry.GetProfile(ctx, "clinic")
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigProfile{
		Name:     "clinic",
		BaseURL:  "http://clinic.local:8000",
		Username: "asha",
		Password: "secret",
		LoginAs:  domain.PharmacistLogin,
	}, p)
	assert.Equal(t, domain.Credentials{Username: "asha", Password: "secret", Endpoint: domain.PharmacistLogin}, p.Credentials())

	p, err = registry.GetProfile(ctx, "doctor")
	require.NoError(t, err)
	assert.Equal(t, domain.DoctorLogin, p.LoginAs)

	_, err = registry.GetProfile(ctx, "broken")
	assert.ErrorContains(t, err, "unknown login_as")

	_, err = registry.GetProfile(ctx, "missing")
	assert.ErrorContains(t, err, "profile missing not found")
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, s.API.BaseURL)
	assert.Equal(t, 10*time.Second, s.API.Timeout)
	assert.Equal(t, "127.0.0.1:8080", s.Addr())
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "reports", s.S3.Prefix)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	path := writeFile(t, "atlas.yaml", `
api:
  base_url: http://files.local
  timeout: 3s
export:
  dir: /tmp/exports
s3:
  bucket: clinic-reports
log:
  level: debug
  format: console
`)
	t.Setenv("ATLAS_S3_PREFIX", "monthly")
	t.Setenv("SERVER_PORT", "9090")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "http://files.local", s.API.BaseURL)
	assert.Equal(t, 3*time.Second, s.API.Timeout)
	assert.Equal(t, "/tmp/exports", s.Export.Dir)
	assert.Equal(t, "clinic-reports", s.S3.Bucket)
	assert.Equal(t, "monthly", s.S3.Prefix)
	assert.Equal(t, 9090, s.Server.Port)
	assert.Equal(t, "console", s.Log.Format)
}

func TestLoadSettings_BadFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
