// Package config loads todod settings from built-in defaults, the
// environment, an optional YAML file and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	gconfig "github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/adfharrison1/todod/pkg/domain"
)

const (
	AckRedirect = "redirect"
	AckJSON     = "json"
)

// Config holds every startup setting of the service
type Config struct {
	DatabaseURL string `config:"database_url"`
	Addr        string `config:"addr"`
	RedirectURL string `config:"redirect_url"`
	AckMode     string `config:"ack_mode"`
	PoolSize    int    `config:"pool_size"`
	LogLevel    string `config:"log_level"`
	BackupFile  string `config:"backup_file"`

	// DatabasePath is derived from DatabaseURL during validation
	DatabasePath string `config:"-"`
}

// defaults returns a fresh map on every call; loaded maps are merged into in place.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"addr":         "0.0.0.0:8000",
		"redirect_url": "http://localhost:5173",
		"ack_mode":     AckRedirect,
		"pool_size":    4,
		"log_level":    "info",
		"backup_file":  "",
	}
}

// envKeys maps environment variables onto config keys
var envKeys = map[string]string{
	"DATABASE_URL":       "database_url",
	"TODOD_ADDR":         "addr",
	"TODOD_REDIRECT_URL": "redirect_url",
	"TODOD_ACK_MODE":     "ack_mode",
	"TODOD_POOL_SIZE":    "pool_size",
	"TODOD_LOG_LEVEL":    "log_level",
	"TODOD_BACKUP_FILE":  "backup_file",
}

// ErrHelp is returned by Load when -h/--help was requested
var ErrHelp = pflag.ErrHelp

// Load parses args (without the program name) and returns a validated
// Config. Every failure other than ErrHelp is a *domain.ConfigError.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("todod", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "YAML config file path")
	flags.String("database-url", "", "Database connection string, e.g. sqlite://todos.db (env DATABASE_URL)")
	flags.String("addr", "", "Listen address (env TODOD_ADDR, default 0.0.0.0:8000)")
	flags.String("redirect-url", "", "Redirect target after create/update/delete (env TODOD_REDIRECT_URL)")
	flags.String("ack-mode", "", "Mutation response: redirect or json (env TODOD_ACK_MODE)")
	flags.Int("pool-size", 0, "Number of pooled database connections (env TODOD_POOL_SIZE)")
	flags.String("log-level", "", "Log level (env TODOD_LOG_LEVEL)")
	flags.String("backup-file", "", "Write a snapshot of all todos here on shutdown (env TODOD_BACKUP_FILE)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &domain.ConfigError{Key: "flags", Err: err}
	}

	c := gconfig.NewWithOptions("todod", func(opt *gconfig.Options) {
		opt.ParseEnv = true
		opt.DecoderConfig.TagName = "config"
	})
	c.AddDriver(yaml.Driver)

	if err := c.LoadData(defaults()); err != nil {
		return nil, &domain.ConfigError{Key: "defaults", Err: err}
	}

	envData, err := fromEnv()
	if err != nil {
		return nil, err
	}
	if err := c.LoadData(envData); err != nil {
		return nil, &domain.ConfigError{Key: "env", Err: err}
	}

	if *configPath != "" {
		if err := c.LoadFiles(*configPath); err != nil {
			return nil, &domain.ConfigError{Key: "config", Err: err}
		}
	}

	if err := c.LoadData(fromFlags(flags)); err != nil {
		return nil, &domain.ConfigError{Key: "flags", Err: err}
	}

	var cfg Config
	if err := c.BindStruct("", &cfg); err != nil {
		return nil, &domain.ConfigError{Key: "config", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fromEnv() (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for env, key := range envKeys {
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if key == "pool_size" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, &domain.ConfigError{Key: key, Err: fmt.Errorf("%s: %w", env, err)}
			}
			data[key] = n
			continue
		}
		data[key] = value
	}
	return data, nil
}

func fromFlags(flags *pflag.FlagSet) map[string]interface{} {
	data := make(map[string]interface{})
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if key == "pool_size" {
			n, _ := flags.GetInt(f.Name)
			data[key] = n
			return
		}
		data[key] = f.Value.String()
	})
	return data
}

// Validate checks every setting and fills DatabasePath
func (cfg *Config) Validate() error {
	if cfg.DatabaseURL == "" {
		return &domain.ConfigError{Key: "database_url", Err: errors.New("is required (set DATABASE_URL)")}
	}
	path, err := ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return &domain.ConfigError{Key: "database_url", Err: err}
	}
	cfg.DatabasePath = path

	if cfg.PoolSize <= 0 {
		return &domain.ConfigError{Key: "pool_size", Err: fmt.Errorf("must be positive, got %d", cfg.PoolSize)}
	}
	if path == ":memory:" && cfg.PoolSize > 1 {
		return &domain.ConfigError{Key: "pool_size", Err: errors.New("in-memory database requires pool_size 1")}
	}

	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return &domain.ConfigError{Key: "addr", Err: err}
	}

	u, err := url.Parse(cfg.RedirectURL)
	if err != nil {
		return &domain.ConfigError{Key: "redirect_url", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return &domain.ConfigError{Key: "redirect_url", Err: fmt.Errorf("%q is not an absolute URL", cfg.RedirectURL)}
	}

	switch cfg.AckMode {
	case AckRedirect, AckJSON:
	default:
		return &domain.ConfigError{Key: "ack_mode", Err: fmt.Errorf("unknown mode %q", cfg.AckMode)}
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return &domain.ConfigError{Key: "log_level", Err: err}
	}
	return nil
}

// ParseDatabaseURL turns a connection string into a path the SQLite
// driver can open. Accepted forms: sqlite://path, sqlite:path,
// sqlite::memory:, file: URIs and bare paths.
func ParseDatabaseURL(dsn string) (string, error) {
	var path string
	switch {
	case strings.HasPrefix(dsn, "file:"):
		return dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path = strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		path = strings.TrimPrefix(dsn, "sqlite:")
	case strings.Contains(dsn, "://"):
		return "", fmt.Errorf("unsupported database scheme in %q", dsn)
	default:
		path = dsn
	}

	if path == "" {
		return "", fmt.Errorf("missing database path in %q", dsn)
	}
	if path == ":memory:" {
		return path, nil
	}
	if strings.Contains(path, "?") {
		return "file:" + path, nil
	}
	return path, nil
}
