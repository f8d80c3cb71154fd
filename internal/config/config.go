// Package config loads eventboard settings from the environment and an
// optional YAML file, and configures logging.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"github.com/eventboard/eventboard/client"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "EVENTBOARD"

// Config holds client settings.
// Environment variables are parsed from the EVENTBOARD_ prefix; keys present
// in the YAML file named by EVENTBOARD_CONFIG override them.
type Config struct {
	APIURL        string        `envconfig:"API_URL" default:"http://localhost:3000" yaml:"apiUrl"`
	Session       string        `envconfig:"SESSION" yaml:"session"`
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"session" yaml:"sessionCookie"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s" yaml:"httpTimeout"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" yaml:"logLevel"`
	Debug    bool   `envconfig:"DEBUG" default:"false" yaml:"debug"`

	// Centralized role checks in the app; views check roles either way.
	EnforceRoles bool `envconfig:"ENFORCE_ROLES" default:"false" yaml:"enforceRoles"`

	// Streamable HTTP address for the MCP server; stdio when empty.
	MCPAddr string `envconfig:"MCP_ADDR" yaml:"mcpAddr"`

	ConfigFile string `envconfig:"CONFIG" yaml:"-"`
}

// Load reads the environment and then the optional config file.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.ConfigFile != "" {
		if err := cfg.MergeFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Bool("session_present", cfg.Session != "").
		Str("session_cookie", cfg.SessionCookie).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("enforce_roles", cfg.EnforceRoles).
		Str("config_file", cfg.ConfigFile).
		Msg("Configuration loaded")

	return &cfg, nil
}

// MergeFile overlays the keys present in the YAML file at path. ${VAR}
// references in the file are expanded from the environment first.
func (c *Config) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings that can be wrong.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL must not be empty")
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative: %s", c.HTTPTimeout)
	}
	return nil
}

// ClientOptions translates the settings into SDK options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{client.WithSessionCookieName(c.SessionCookie)}
	if c.Session != "" {
		opts = append(opts, client.WithSession(c.Session))
	}
	if c.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	return opts
}

// NewClient builds an SDK client from the settings.
func (c *Config) NewClient() (*client.Client, error) {
	return client.New(c.APIURL, c.ClientOptions()...)
}

// NewForTesting returns defaults pointed at apiURL.
func NewForTesting(apiURL string) *Config {
	return &Config{
		APIURL:        apiURL,
		SessionCookie: client.DefaultSessionCookie,
		LogLevel:      "debug",
	}
}
