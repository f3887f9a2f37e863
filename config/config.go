package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisStoreDB  int    `mapstructure:"REDIS_STORE_DB"`

	// Gemini configuration.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Google Sheets / Calendar credentials (service account JSON path or API key).
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleAPIKey          string `mapstructure:"GOOGLE_API_KEY"`

	// Booking behaviour. The business timezone drives day-boundary
	// computation for calendar queries regardless of caller locale; the
	// class-slot threshold separates fixed class slots from open
	// availability windows.
	BusinessTimezone   string `mapstructure:"BUSINESS_TIMEZONE"`
	ClassSlotMaxHours  int    `mapstructure:"CLASS_SLOT_MAX_HOURS"`
	RequestTimeoutSecs int    `mapstructure:"REQUEST_TIMEOUT_SECS"`
	CatalogCacheTTLMin int    `mapstructure:"CATALOG_CACHE_TTL_MIN"`

	// Calendar invite behaviour: "all" sends invite emails to attendees,
	// "none" records the booking silently.
	CalendarInviteMode string `mapstructure:"CALENDAR_INVITE_MODE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_STORE_DB", 1)
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Singapore")
	viper.SetDefault("CLASS_SLOT_MAX_HOURS", 4)
	viper.SetDefault("REQUEST_TIMEOUT_SECS", 30)
	viper.SetDefault("CATALOG_CACHE_TTL_MIN", 5)
	viper.SetDefault("CALENDAR_INVITE_MODE", "none")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := Validate(AppConfig); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

// Validate rejects configurations that would otherwise surface as mid-request
// failures. Secrets must be injected at boot, never defaulted.
func Validate(cfg Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.GoogleCredentialsFile == "" && cfg.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_CREDENTIALS_FILE or GOOGLE_API_KEY is required")
	}
	if cfg.ClassSlotMaxHours <= 0 {
		return fmt.Errorf("CLASS_SLOT_MAX_HOURS must be positive, got %d", cfg.ClassSlotMaxHours)
	}
	if cfg.RequestTimeoutSecs <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECS must be positive, got %d", cfg.RequestTimeoutSecs)
	}
	switch cfg.CalendarInviteMode {
	case "all", "none", "externalOnly":
	default:
		return fmt.Errorf("CALENDAR_INVITE_MODE must be one of all/none/externalOnly, got %q", cfg.CalendarInviteMode)
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
