package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PLATFORM", "DISCORD_TOKEN", "TOKEN", "GUILD_ID", "PORT", "ARCHIVE_DB_PATH",
	"TIMEZONE", "LOG_LEVEL", "ALLOWED_ORIGINS", "SESSION_TTL", "SESSION_CAPACITY", "SESSION_SWEEP_INTERVAL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDiscordDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLATFORM", "discord")
	t.Setenv("DISCORD_TOKEN", "secret")
	t.Setenv("GUILD_ID", "guild")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SWEEP_INTERVAL", "1m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PlatformDiscord, cfg.Platform)
	assert.Equal(t, "secret", cfg.DiscordToken)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Sessions.Unbounded())
	assert.Empty(t, cfg.ArchivePath)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadFallsBackToLegacyToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLATFORM", "discord")
	t.Setenv("TOKEN", "legacy")
	t.Setenv("GUILD_ID", "guild")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.DiscordToken)
}

func TestLoadConsoleWithRetention(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLATFORM", "Console")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_CAPACITY", "500")
	t.Setenv("SESSION_SWEEP_INTERVAL", "10m")
	t.Setenv("ARCHIVE_DB_PATH", "./data/entries.db")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, ,https://ops.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PlatformConsole, cfg.Platform)
	assert.Equal(t, 2*time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, 500, cfg.Sessions.Capacity)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.SweepInterval)
	assert.False(t, cfg.Sessions.Unbounded())
	assert.Equal(t, "./data/entries.db", cfg.ArchivePath)
	assert.Equal(t, []string{"http://localhost:5173", "https://ops.example.com"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Platform:     PlatformDiscord,
			DiscordToken: "secret",
			GuildID:      "guild",
			Port:         "8080",
			Sessions:     SessionConfig{SweepInterval: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.DiscordToken = "" }, wantErr: "DISCORD_TOKEN"},
		{name: "missing guild", mutate: func(c *Config) { c.GuildID = "" }, wantErr: "GUILD_ID"},
		{name: "console needs no token", mutate: func(c *Config) { c.Platform = PlatformConsole; c.DiscordToken = "" }},
		{name: "unknown platform", mutate: func(c *Config) { c.Platform = "irc" }, wantErr: "PLATFORM"},
		{name: "missing port", mutate: func(c *Config) { c.Port = "" }, wantErr: "PORT"},
		{name: "negative ttl", mutate: func(c *Config) { c.Sessions.TTL = -time.Second }, wantErr: "SESSION_TTL"},
		{name: "negative capacity", mutate: func(c *Config) { c.Sessions.Capacity = -1 }, wantErr: "SESSION_CAPACITY"},
		{
			name:    "ttl without sweep",
			mutate:  func(c *Config) { c.Sessions.TTL = time.Hour; c.Sessions.SweepInterval = 0 },
			wantErr: "SESSION_SWEEP_INTERVAL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLATFORM", "console")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.ErrorContains(t, err, "TIMEZONE")
}

func TestLoadRejectsMalformedRetention(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SESSION_TTL", "2 hours"},
		{"SESSION_TTL", "90"},
		{"SESSION_CAPACITY", "lots"},
		{"SESSION_SWEEP_INTERVAL", "often"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PLATFORM", "console")
			t.Setenv("PORT", "8080")
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.ErrorContains(t, err, tc.key)
		})
	}
}

func TestLoadBlankRetentionUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLATFORM", "console")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Sessions.TTL)
	assert.Zero(t, cfg.Sessions.Capacity)
	assert.Equal(t, 5*time.Minute, cfg.Sessions.SweepInterval)
}
