// Package config loads and validates application configuration.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file named by CONFIG_FILE, and environment variables (optionally
// seeded from a .env file in the working directory).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/roster"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverBolt     = "bolt"
)

var drivers = []string{DriverMemory, DriverSQLite, DriverPostgres, DriverRedis, DriverBolt}

// Storage selects and addresses the slot store backend.
type Storage struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
	RedisAddr   string `yaml:"redis_addr"`
	BoltPath    string `yaml:"bolt_path"`
}

// Publish holds the webhook settings. They are re-read from the environment
// on every publish, see Config.PublishSettings.
type Publish struct {
	WebhookURL     string        `yaml:"webhook_url"`
	Password       string        `yaml:"password"`
	FilenamePrefix string        `yaml:"filename_prefix"`
	Timeout        time.Duration `yaml:"-"`
	RawTimeout     string        `yaml:"timeout"`
}

// Config holds all configuration values for the server and the CLI.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat is "json" (default) or "text".
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (the editor UI dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies, including uploaded documents.
	MaxBodyBytes int64

	Storage Storage
	Publish Publish

	// FSRMembers and AssociatedMembers feed attendee autocomplete.
	FSRMembers        []domain.Member
	AssociatedMembers []domain.Member

	// DefaultLanguage applies until the user picks one. Defaults to "de".
	DefaultLanguage string

	// filePublish keeps the file-level publish values so PublishSettings
	// can layer the current environment over them.
	filePublish Publish
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Port            string   `yaml:"port"`
	LogLevel        string   `yaml:"log_level"`
	LogFormat       string   `yaml:"log_format"`
	CORSOrigins     []string `yaml:"cors_origins"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes"`
	Storage         Storage  `yaml:"storage"`
	Publish         Publish  `yaml:"publish"`
	DefaultLanguage string   `yaml:"default_language"`
	Roster          struct {
		FSR        []domain.Member `yaml:"fsr"`
		Associated []domain.Member `yaml:"associated"`
	} `yaml:"roster"`
}

// Load reads configuration and returns a Config.
// Returns an error listing every invalid or missing value.
func Load() (Config, error) {
	// A missing .env file is normal; real environment variables win anyway.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:            getEnv("PORT", or(file.Port, "8080")),
		LogLevel:        getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		LogFormat:       getEnv("LOG_FORMAT", or(file.LogFormat, "json")),
		CORSOrigins:     file.CORSOrigins,
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", or(file.DefaultLanguage, "de")),
		Storage: Storage{
			Driver:      getEnv("STORAGE_DRIVER", or(file.Storage.Driver, DriverSQLite)),
			SQLitePath:  getEnv("SQLITE_PATH", or(file.Storage.SQLitePath, "protokoll.db")),
			DatabaseURL: getEnv("DATABASE_URL", file.Storage.DatabaseURL),
			RedisAddr:   getEnv("REDIS_ADDR", file.Storage.RedisAddr),
			BoltPath:    getEnv("BOLT_PATH", or(file.Storage.BoltPath, "protokoll.bolt")),
		},
		filePublish: file.Publish,
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" || len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	}

	var problems []string

	cfg.MaxBodyBytes = file.MaxBodyBytes
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			problems = append(problems, "MAX_BODY_BYTES must be an integer")
		}
		cfg.MaxBodyBytes = n
	}
	if cfg.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be positive")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q is not one of json, text", cfg.LogFormat))
	}

	switch {
	case !slices.Contains(drivers, cfg.Storage.Driver):
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER %q is not one of %s", cfg.Storage.Driver, strings.Join(drivers, ", ")))
	case cfg.Storage.Driver == DriverPostgres && cfg.Storage.DatabaseURL == "":
		problems = append(problems, "DATABASE_URL is required for STORAGE_DRIVER=postgres")
	case cfg.Storage.Driver == DriverRedis && cfg.Storage.RedisAddr == "":
		problems = append(problems, "REDIS_ADDR is required for STORAGE_DRIVER=redis")
	}

	publish, err := cfg.PublishSettings()
	if err != nil {
		problems = append(problems, err.Error())
	}
	cfg.Publish = publish

	cfg.FSRMembers = loadRoster("FSR_MEMBERS", file.Roster.FSR)
	cfg.AssociatedMembers = loadRoster("ASSOCIATED_MEMBERS", file.Roster.Associated)

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// PublishSettings layers the current environment over the file values.
// It is called per publish so webhook settings can change without a restart.
// An unparsable PUBLISH_TIMEOUT is reported and the default used.
func (c Config) PublishSettings() (Publish, error) {
	p := Publish{
		WebhookURL:     getEnv("DISCORD_WEBHOOK_URL", c.filePublish.WebhookURL),
		Password:       getEnv("DISCORD_PASSWORD", c.filePublish.Password),
		FilenamePrefix: getEnv("PUBLISH_FILENAME_PREFIX", c.filePublish.FilenamePrefix),
		RawTimeout:     getEnv("PUBLISH_TIMEOUT", or(c.filePublish.RawTimeout, "15s")),
	}
	d, err := time.ParseDuration(p.RawTimeout)
	if err != nil || d <= 0 {
		p.Timeout = 15 * time.Second
		return p, fmt.Errorf("PUBLISH_TIMEOUT %q is not a positive duration", p.RawTimeout)
	}
	p.Timeout = d
	return p, nil
}

// loadRoster prefers the environment string over structured file records.
func loadRoster(key string, records []domain.Member) []domain.Member {
	if v := os.Getenv(key); v != "" {
		return roster.Parse(v)
	}
	return roster.Normalize(records)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
