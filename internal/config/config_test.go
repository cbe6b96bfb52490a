package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"LOG_LEVEL", "APP_PORT", "STORAGE_BACKEND", "MONGODB_URI", "MONGODB_DB_NAME",
	"DEFAULT_USERNAME", "DEFAULT_PASSWORD", "JWT_SECRET", "JWT_TTL_HOURS",
	"REPORT_CRON_SCHEDULE", "TIMEZONE",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_DIGEST_RECIPIENT",
	"WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION",
}

// clearEnv blanks every key so values from the host do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_PASSWORD", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "babytrack", cfg.MongoDB.DBName)
	assert.Equal(t, "parent", cfg.Auth.DefaultUsername)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range configKeys {
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDEFAULT_PASSWORD=pw\nJWT_SECRET=s3cret\nJWT_TTL_HOURS=2\nTIMEZONE=Europe/Paris\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "Europe/Paris", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Storage:   StorageConfig{Backend: BackendMemory},
			MongoDB:   MongoDBConfig{DBName: "babytrack"},
			Auth:      AuthConfig{DefaultUsername: "parent", DefaultPassword: "pw", TokenTTL: time.Hour},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
			WhatsApp:  WhatsAppConfig{BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing password", func(c *Config) { c.Auth.DefaultPassword = "" }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "sqlite" }},
		{"mongodb without uri", func(c *Config) { c.Storage.Backend = BackendMongoDB }},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }},
		{"half sheets config", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }},
		{"partial whatsapp", func(c *Config) { c.WhatsApp.AccessToken = "token" }},
		{"empty cron", func(c *Config) { c.Reporting.CronSchedule = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
