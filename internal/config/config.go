package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the bot needs at startup. All Baserow values and
// the bot token are required; AdminTelegramID is optional and merely disables
// admin notifications and the /notify command when absent.
type Config struct {
	Telegram TelegramConfig
	Baserow  BaserowConfig
	Redis    RedisConfig
	Server   ServerConfig

	AdminTelegramID int64
	WebAppURL       string
	LogLevel        string
}

type TelegramConfig struct {
	Token      string
	WebhookURL string // long polling when empty
}

type BaserowConfig struct {
	BaseURL      string
	Token        string
	UsersTable   int
	LotsTable    int
	BetsTable    int
	ArtistsTable int
	HTTPTimeout  time.Duration
}

type RedisConfig struct {
	URL string // in-memory sessions when empty
}

type ServerConfig struct {
	ListenAddr string
}

// Load reads the environment and validates required values.
func Load() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			Token:      getEnv("TELEGRAM_BOT_TOKEN", ""),
			WebhookURL: getEnv("WEBHOOK_URL", ""),
		},
		Baserow: BaserowConfig{
			BaseURL:     getEnv("BASEROW_BASE_URL", ""),
			Token:       getEnv("BASEROW_TOKEN", ""),
			HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Server: ServerConfig{
			ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		},
		AdminTelegramID: getEnvAsInt64("ADMIN_TELEGRAM_ID", 0),
		WebAppURL:       getEnv("WEBAPP_URL", "https://aspyart.com"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	tables := []struct {
		key string
		dst *int
	}{
		{"BASEROW_USERS_ID", &cfg.Baserow.UsersTable},
		{"BASEROW_LOTS_ID", &cfg.Baserow.LotsTable},
		{"BASEROW_BETS_ID", &cfg.Baserow.BetsTable},
		{"BASEROW_ARTISTS_ID", &cfg.Baserow.ArtistsTable},
	}
	for _, tbl := range tables {
		id, err := requiredTableID(tbl.key)
		if err != nil {
			return nil, err
		}
		*tbl.dst = id
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	required := []struct {
		field string
		ok    bool
	}{
		{"TELEGRAM_BOT_TOKEN", cfg.Telegram.Token != ""},
		{"BASEROW_BASE_URL", cfg.Baserow.BaseURL != ""},
		{"BASEROW_TOKEN", cfg.Baserow.Token != ""},
	}

	for _, r := range required {
		if !r.ok {
			return ConfigError{Field: r.field, Reason: "must be set"}
		}
	}
	return nil
}

// requiredTableID distinguishes an absent table ID from a malformed one so
// the operator is pointed at the actual mistake.
func requiredTableID(key string) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return 0, ConfigError{Field: key, Reason: "must be set"}
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, ConfigError{Field: key, Reason: "must be a positive integer"}
	}
	return id, nil
}

// HasAdmin reports whether an administrator identifier is configured.
func (c *Config) HasAdmin() bool {
	return c.AdminTelegramID != 0
}

type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Reason
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
