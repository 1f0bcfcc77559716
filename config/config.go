// Package config loads memo client configuration from YAML and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap/zapcore"
)

const (
	// PathEnv names the config file when no explicit path is given
	PathEnv = "MEMO_CONFIG"
	// DefaultPath is read from the working directory when present
	DefaultPath = "memo.yaml"
)

// Config is the root client configuration.
// Sources by priority:
//  1. explicit path passed to Load;
//  2. MEMO_CONFIG;
//  3. ./memo.yaml;
//  4. environment only.
//
// Environment variables overlay file values in every case.
type Config struct {
	BaseURL string  `yaml:"base_url" env:"MEMO_API_BASE" env-default:"http://127.0.0.1:8000"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
}

// Session configures where the token pair and the cached identity are kept
type Session struct {
	// URL is an afs location of the session file, empty keeps the session in memory
	URL string `yaml:"url" env:"MEMO_SESSION_URL"`
	// Key is a scy key URL; when set the session file is encrypted
	Key string `yaml:"key" env:"MEMO_SESSION_KEY"`
	// Cookies persists backend cookies next to the tokens
	Cookies bool `yaml:"cookies" env:"MEMO_SESSION_COOKIES" env-default:"false"`
}

type Log struct {
	Level       string `yaml:"level" env:"MEMO_LOG_LEVEL" env-default:"info"`
	Development bool   `yaml:"development" env:"MEMO_LOG_DEVELOPMENT" env-default:"false"`
}

// Load reads configuration following the source priority
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %v: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configured values
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("invalid base_url: %v", c.BaseURL)
	}
	if c.Session.Key != "" && c.Session.URL == "" {
		return fmt.Errorf("session.key requires session.url")
	}
	if _, err = c.Log.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// ZapLevel parses the configured log level
func (l *Log) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return level, fmt.Errorf("invalid log.level: %w", err)
	}
	return level, nil
}
