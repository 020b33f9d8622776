// Package config provides configuration loading for backplane.
//
// Configuration comes from the environment (envconfig tags), with an
// optional YAML overlay file pointed at by BACKPLANE_CONFIG. The
// overlay wins for any field it sets; everything else keeps its
// environment or default value.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration struct.
type Config struct {
	// Env selects the deployment mode. "production" forces SSL on the
	// database connection and silences debug/info/success logging.
	Env string `envconfig:"BACKPLANE_ENV" default:"development" yaml:"env"`

	Host string `envconfig:"HOST" default:"127.0.0.1" yaml:"host"`
	Port string `envconfig:"PORT" default:"8090" yaml:"port"`

	// DatabaseURL is the Postgres connection string used by the
	// migration runner and the seed-tools command.
	DatabaseURL string `envconfig:"DATABASE_URL" yaml:"databaseUrl"`

	// Backend is the remote platform API everything user-facing
	// delegates to.
	BackendBaseURL string `envconfig:"BACKEND_BASE_URL" default:"http://localhost:8080" yaml:"backendBaseUrl"`
	BackendAPIKey  string `envconfig:"BACKEND_API_KEY" yaml:"backendApiKey"`

	// Speech probe settings.
	SpeechWSURL    string `envconfig:"SPEECH_WS_URL" default:"wss://api.deepgram.com/v1/listen" yaml:"speechWsUrl"`
	DeepgramAPIKey string `envconfig:"DEEPGRAM_API_KEY" yaml:"deepgramApiKey"`

	// IconManifest optionally points at a YAML file enumerating the
	// icon filenames the proxy route can pre-resolve.
	IconManifest string `envconfig:"ICON_MANIFEST" yaml:"iconManifest"`

	Debug bool `envconfig:"BACKPLANE_DEBUG" yaml:"debug"`
	Perf  bool `envconfig:"BACKPLANE_PERF" yaml:"perf"`
}

// Load reads configuration from the environment and, if
// BACKPLANE_CONFIG is set, overlays the YAML file it points to.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if path := os.Getenv("BACKPLANE_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// overlayFile merges the YAML file at path over cfg. Only fields the
// file actually sets are replaced.
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file struct {
		Env            *string `yaml:"env"`
		Host           *string `yaml:"host"`
		Port           *string `yaml:"port"`
		DatabaseURL    *string `yaml:"databaseUrl"`
		BackendBaseURL *string `yaml:"backendBaseUrl"`
		BackendAPIKey  *string `yaml:"backendApiKey"`
		SpeechWSURL    *string `yaml:"speechWsUrl"`
		DeepgramAPIKey *string `yaml:"deepgramApiKey"`
		IconManifest   *string `yaml:"iconManifest"`
		Debug          *bool   `yaml:"debug"`
		Perf           *bool   `yaml:"perf"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&c.Env, file.Env)
	setString(&c.Host, file.Host)
	setString(&c.Port, file.Port)
	setString(&c.DatabaseURL, file.DatabaseURL)
	setString(&c.BackendBaseURL, file.BackendBaseURL)
	setString(&c.BackendAPIKey, file.BackendAPIKey)
	setString(&c.SpeechWSURL, file.SpeechWSURL)
	setString(&c.DeepgramAPIKey, file.DeepgramAPIKey)
	setString(&c.IconManifest, file.IconManifest)
	if file.Debug != nil {
		c.Debug = *file.Debug
	}
	if file.Perf != nil {
		c.Perf = *file.Perf
	}
	return nil
}

// Production reports whether the deployment mode is production.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// ListenAddr returns the host:port the serve command binds to.
func (c *Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}
