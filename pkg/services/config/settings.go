package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "ATLAS"
	DefaultBaseURL = "http://127.0.0.1:8000"
)

type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type ExportSettings struct {
	Dir string `mapstructure:"dir"`
}

type S3Settings struct {
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

type PDFSettings struct {
	Header string `mapstructure:"header"`
	Footer string `mapstructure:"footer"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Settings struct {
	API     APISettings    `mapstructure:"api"`
	Profile string         `mapstructure:"profile"`
	Server  ServerSettings `mapstructure:"server"`
	Export  ExportSettings `mapstructure:"export"`
	S3      S3Settings     `mapstructure:"s3"`
	PDF     PDFSettings    `mapstructure:"pdf"`
	Log     LogSettings    `mapstructure:"log"`
}

// Addr is the listen address of the web server.
func (s Settings) Addr() string {
	return net.JoinHostPort(s.Server.Host, strconv.Itoa(s.Server.Port))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("profile", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("export.dir", ".")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "reports")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.profile", "")
	v.SetDefault("pdf.header", "")
	v.SetDefault("pdf.footer", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadSettings reads path, or atlas.yaml from the working directory when path
// is empty, then applies ATLAS_* environment overrides. A missing atlas.yaml
// is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// plain names used by existing .env files
	_ = v.BindEnv("server.host", EnvPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "SERVER_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("atlas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}
