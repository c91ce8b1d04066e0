// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Platforms the bot can serve.
const (
	PlatformDiscord = "discord"
	PlatformConsole = "console"
)

// Config holds all application configuration.
type Config struct {
	Platform       string
	DiscordToken   string
	GuildID        string
	Port           string
	AllowedOrigins []string // browser origins allowed to use the ops API and console
	ArchivePath    string   // empty disables the finished-entry archive
	Location       *time.Location
	LogLevel       slog.Level
	Sessions       SessionConfig
}

// SessionConfig controls how long in-progress sessions are retained.
type SessionConfig struct {
	TTL           time.Duration // 0 keeps sessions for the life of the process
	Capacity      int           // 0 means unbounded
	SweepInterval time.Duration
}

// Unbounded reports whether sessions are never evicted.
func (s SessionConfig) Unbounded() bool {
	return s.TTL <= 0 && s.Capacity <= 0
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	loc, err := loadLocation(getEnv("TIMEZONE", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	sessions, err := loadSessionConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Platform:       strings.ToLower(strings.TrimSpace(getEnv("PLATFORM", PlatformDiscord))),
		DiscordToken:   firstNonEmpty(os.Getenv("DISCORD_TOKEN"), os.Getenv("TOKEN")),
		GuildID:        getEnv("GUILD_ID", ""),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		ArchivePath:    getEnv("ARCHIVE_DB_PATH", ""),
		Location:       loc,
		LogLevel:       level,
		Sessions:       sessions,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	switch c.Platform {
	case PlatformDiscord:
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_TOKEN cannot be empty")
		}
		if c.GuildID == "" {
			return fmt.Errorf("GUILD_ID cannot be empty")
		}
	case PlatformConsole:
	default:
		return fmt.Errorf("PLATFORM must be %q or %q, got %q", PlatformDiscord, PlatformConsole, c.Platform)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Sessions.TTL < 0 {
		return fmt.Errorf("SESSION_TTL must be >= 0")
	}
	if c.Sessions.Capacity < 0 {
		return fmt.Errorf("SESSION_CAPACITY must be >= 0")
	}
	if c.Sessions.TTL > 0 && c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be > 0 when SESSION_TTL is set")
	}
	return nil
}

// loadSessionConfig reads the retention settings. A malformed value is an
// error rather than a fallback, since falling back to 0 would silently turn
// eviction off.
func loadSessionConfig() (SessionConfig, error) {
	ttl, err := getEnvDuration("SESSION_TTL", 0)
	if err != nil {
		return SessionConfig{}, err
	}
	capacity, err := getEnvInt("SESSION_CAPACITY", 0)
	if err != nil {
		return SessionConfig{}, err
	}
	sweep, err := getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return SessionConfig{}, err
	}
	return SessionConfig{TTL: ttl, Capacity: capacity, SweepInterval: sweep}, nil
}

func loadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func parseLevel(value string) (slog.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", value, err)
	}
	return level, nil
}

// splitList parses a comma-separated list, dropping blank items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s %q: not an integer", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s %q: not a duration such as 30m or 2h", key, value)
	}
	return d, nil
}
