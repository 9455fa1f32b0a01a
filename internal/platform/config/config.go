package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIBaseURL = "https://api.clickup.com/api/v2"
	appDirName        = "cutrack"
)

type Config struct {
	DataDir      string
	DBPath       string
	APIBaseURL   string
	TickInterval time.Duration
	StaleAfter   time.Duration
	HistoryLimit int
	HistoryDays  int
	Billable     bool
	Logging      LoggingConfig
}

type LoggingConfig struct {
	Level  string
	Format string
}

// New builds a configuration with defaults rooted at dataDir.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "cutrack.db"),
		APIBaseURL:   DefaultAPIBaseURL,
		TickInterval: time.Second,
		StaleAfter:   24 * time.Hour,
		HistoryLimit: 100,
		HistoryDays:  30,
		Logging:      LoggingConfig{Level: "info", Format: "console"},
	}, nil
}

// DefaultDataDir is <user config dir>/cutrack.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Load layers defaults, an optional <dataDir>/config.yaml and CUTRACK_*
// environment variables.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("CUTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("api_base_url", cfg.APIBaseURL)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("stale_after", cfg.StaleAfter)
	v.SetDefault("history_limit", cfg.HistoryLimit)
	v.SetDefault("history_days", cfg.HistoryDays)
	v.SetDefault("billable", cfg.Billable)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.DBPath = v.GetString("db_path")
	cfg.APIBaseURL = strings.TrimRight(v.GetString("api_base_url"), "/")
	cfg.TickInterval = v.GetDuration("tick_interval")
	cfg.StaleAfter = v.GetDuration("stale_after")
	cfg.HistoryLimit = v.GetInt("history_limit")
	cfg.HistoryDays = v.GetInt("history_days")
	cfg.Billable = v.GetBool("billable")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.Format = v.GetString("logging.format")

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.StaleAfter <= 0 {
		return fmt.Errorf("stale_after must be positive, got %s", c.StaleAfter)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.HistoryDays <= 0 {
		return fmt.Errorf("history_days must be positive, got %d", c.HistoryDays)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
