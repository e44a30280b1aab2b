// Package config loads mediaui settings from YAML or TOML files, with
// environment overrides on top.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.yaml
var exampleConf []byte

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL   = "MEDIAUI_API_URL"
	EnvAddr     = "MEDIAUI_ADDR"
	EnvLogLevel = "MEDIAUI_LOG_LEVEL"
)

// Config is the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	API    APIConfig    `yaml:"api" toml:"api"`
	Site   SiteConfig   `yaml:"site" toml:"site"`
	Flash  FlashConfig  `yaml:"flash" toml:"flash"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ServerConfig contains page server settings.
type ServerConfig struct {
	Addr          string        `yaml:"addr" toml:"addr"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace" toml:"shutdown_grace"`
	TemplatesDir  string        `yaml:"templates_dir" toml:"templates_dir"`
	Debug         bool          `yaml:"debug" toml:"debug"`
}

// APIConfig points at the media API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	Mock    bool          `yaml:"mock" toml:"mock"`
}

// SiteConfig holds page chrome settings.
type SiteConfig struct {
	Title  string `yaml:"title" toml:"title"`
	GtagID string `yaml:"gtag_id" toml:"gtag_id"`
}

// FlashConfig configures one-shot messages and their session cookie.
type FlashConfig struct {
	CookieName string        `yaml:"cookie_name" toml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl" toml:"ttl"`
	Secure     bool          `yaml:"secure" toml:"secure"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration of the embedded example file.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(exampleConf, &cfg); err != nil {
		panic(fmt.Sprintf("config: parse embedded default config: %v", err))
	}
	return &cfg
}

// Example returns the embedded example file.
func Example() []byte {
	return append([]byte(nil), exampleConf...)
}

// Load reads path on top of the defaults. The format follows the extension:
// .toml is TOML, anything else YAML. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(cfg, data, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges data into cfg. ext picks the format.
func Decode(cfg *Config, data []byte, ext string) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case "yaml", "yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// ApplyEnv overrides values from the environment. getenv defaults to
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
		c.API.Mock = false
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if !c.API.Mock {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute URL", c.API.BaseURL))
		}
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.Flash.TTL <= 0 {
		errs = append(errs, errors.New("flash.ttl must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json, logfmt", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// WriteExample writes the embedded example file to path. It refuses to
// overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: file already exists at %s", path)
	}
	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
