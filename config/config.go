// Package config loads the application configuration from an optional YAML
// file with environment variable overrides. A .env file in the working
// directory is honored (the site has always been configured that way).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Cleanup CleanupConfig `yaml:"cleanup"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver     string `yaml:"driver"`      // "jsonfile" or "sqlite"
	DataDir    string `yaml:"data_dir"`    // jsonfile collection directory
	SQLitePath string `yaml:"sqlite_path"` // sqlite database file
}

// SMTPConfig contains outbound email settings. An empty Host disables
// email entirely (notifications become no-ops, contact mail fails).
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	AdminEmail string `yaml:"admin_email"` // operator inbox for submissions and contact mail
}

// CleanupConfig controls the scheduled ledger cleanup job.
type CleanupConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron spec, e.g. "0 3 * * *"
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: 3000, StaticDir: "./web"},
		Storage: StorageConfig{Driver: "jsonfile", DataDir: "./data", SQLitePath: "./data/rentals.db"},
		SMTP:    SMTPConfig{Port: 587, AdminEmail: "vermietung@example.com"},
		Cleanup: CleanupConfig{Enabled: true, Schedule: "0 3 * * *"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the configuration. Order of precedence, lowest first:
// defaults, YAML file (if path is non-empty), environment variables.
func Load(path string) (*Config, error) {
	// Best-effort .env load; absence is normal.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies the environment overrides the original deployment used.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = p
		}
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		c.SMTP.User = v
		if c.SMTP.From == "" {
			c.SMTP.From = v
		}
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		c.SMTP.AdminEmail = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
