package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fsr-protokoll/editor/internal/config"
	"github.com/fsr-protokoll/editor/internal/domain"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "PORT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "MAX_BODY_BYTES",
		"STORAGE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "REDIS_ADDR", "BOLT_PATH",
		"DISCORD_WEBHOOK_URL", "DISCORD_PASSWORD", "PUBLISH_FILENAME_PREFIX", "PUBLISH_TIMEOUT",
		"FSR_MEMBERS", "ASSOCIATED_MEMBERS", "DEFAULT_LANGUAGE",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every value falls back to its default
// when nothing is configured.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Equal(t, config.Storage{Driver: "sqlite", SQLitePath: "protokoll.db", BoltPath: "protokoll.bolt"}, cfg.Storage)
	require.Equal(t, "", cfg.Publish.WebhookURL)
	require.Equal(t, 15*time.Second, cfg.Publish.Timeout)
	require.Empty(t, cfg.FSRMembers)
	require.Equal(t, "de", cfg.DefaultLanguage)
}

// TestLoad_overrides verifies that values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/protokoll")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/api/webhooks/1/token")
	t.Setenv("DISCORD_PASSWORD", "s3cret")
	t.Setenv("PUBLISH_TIMEOUT", "3s")
	t.Setenv("FSR_MEMBERS", "Alice [Ali, A.], Bob")
	t.Setenv("DEFAULT_LANGUAGE", "en")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.Equal(t, "postgres", cfg.Storage.Driver)
	require.Equal(t, "postgres://user:pass@db:5432/protokoll", cfg.Storage.DatabaseURL)
	require.Equal(t, "s3cret", cfg.Publish.Password)
	require.Equal(t, 3*time.Second, cfg.Publish.Timeout)
	require.Equal(t, []domain.Member{
		{Name: "Alice", Aliases: []string{"Ali", "A."}},
		{Name: "Bob", Aliases: []string{}},
	}, cfg.FSRMembers)
	require.Equal(t, "en", cfg.DefaultLanguage)
}

// TestLoad_invalid verifies that every problem is reported in one error.
func TestLoad_invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("STORAGE_DRIVER", "floppy")
	t.Setenv("MAX_BODY_BYTES", "lots")
	t.Setenv("PUBLISH_TIMEOUT", "soon")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "LOG_LEVEL")
	require.ErrorContains(t, err, "STORAGE_DRIVER")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
	require.ErrorContains(t, err, "PUBLISH_TIMEOUT")
}

// TestLoad_missingRequired verifies that backend specific settings are
// required once that backend is selected.
func TestLoad_missingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := config.Load()
	require.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORAGE_DRIVER", "redis")
	_, err = config.Load()
	require.ErrorContains(t, err, "REDIS_ADDR")
}

// TestLoad_file verifies the YAML file and that the environment wins over it.
func TestLoad_file(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "protokoll.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
storage:
  driver: bolt
  bolt_path: /var/lib/protokoll.bolt
publish:
  webhook_url: https://file.example/hook
  timeout: 20s
roster:
  fsr:
    - name: " Alice "
      aliases: [Ali]
    - name: ""
  associated:
    - name: Carol
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "6060")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "6060", cfg.Port)
	require.Equal(t, "bolt", cfg.Storage.Driver)
	require.Equal(t, "/var/lib/protokoll.bolt", cfg.Storage.BoltPath)
	require.Equal(t, "https://file.example/hook", cfg.Publish.WebhookURL)
	require.Equal(t, 20*time.Second, cfg.Publish.Timeout)
	require.Equal(t, []domain.Member{{Name: "Alice", Aliases: []string{"Ali"}}}, cfg.FSRMembers)
	require.Equal(t, []domain.Member{{Name: "Carol", Aliases: []string{}}}, cfg.AssociatedMembers)
}

func TestLoad_fileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yml"))

	_, err := config.Load()
	require.Error(t, err)
}

// TestPublishSettings_rereadsEnvironment verifies that the webhook settings
// follow the environment after Load.
func TestPublishSettings_rereadsEnvironment(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	t.Setenv("DISCORD_WEBHOOK_URL", "https://late.example/hook")
	p, err := cfg.PublishSettings()

	require.NoError(t, err)
	require.Equal(t, "https://late.example/hook", p.WebhookURL)
}
