/**
 * @description
 * This package handles the configuration management for the payment-service. It uses the
 * Viper library to read configuration from an optional .env file and environment variables.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultServerPort            = "8080"
	defaultSessionTTLHours       = 24
	defaultQRImageSize           = 300
	defaultNotificationTimeout   = 5
	defaultRateLimitPrefix       = "payments:rate_limit"
	defaultRateLimitPerMinute    = 60
	defaultPaymentEventsExchange = "payment_events"
)

// Config holds all the configuration variables for the payment-service.
type Config struct {
	ServerPort                 string `mapstructure:"SERVER_PORT"`
	AppEnv                     string `mapstructure:"APP_ENV"`
	LogLevel                   string `mapstructure:"LOG_LEVEL"`
	DatabaseURL                string `mapstructure:"DATABASE_URL"`
	RabbitMQURL                string `mapstructure:"RABBITMQ_URL"`
	PaymentEventsExchange      string `mapstructure:"PAYMENT_EVENTS_EXCHANGE"`
	RedisURL                   string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix       string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	PaymentRateLimitPerMinute  int    `mapstructure:"-"`
	DashboardUsername          string `mapstructure:"DASHBOARD_USERNAME"`
	DashboardPassword          string `mapstructure:"DASHBOARD_PASSWORD"`
	DashboardPasswordHash      string `mapstructure:"DASHBOARD_PASSWORD_HASH"`
	SessionTTLHours            int    `mapstructure:"-"`
	CORSAllowedOrigins         string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	QRImageSize                int    `mapstructure:"-"`
	NotificationTimeoutSeconds int    `mapstructure:"-"`
}

// SessionTTL returns the configured dashboard session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// NotificationTimeout bounds a single notification attempt.
func (c Config) NotificationTimeout() time.Duration {
	return time.Duration(c.NotificationTimeoutSeconds) * time.Second
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS into a clean list.
func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig reads configuration from environment variables and the optional .env file in path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", defaultServerPort)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PAYMENT_EVENTS_EXCHANGE", defaultPaymentEventsExchange)
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", defaultRateLimitPrefix)
	viper.SetDefault("PAYMENT_RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute)
	viper.SetDefault("DASHBOARD_USERNAME", "srikanth")
	viper.SetDefault("DASHBOARD_PASSWORD", "1234")
	viper.SetDefault("SESSION_TTL_HOURS", defaultSessionTTLHours)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")
	viper.SetDefault("QR_IMAGE_SIZE", defaultQRImageSize)
	viper.SetDefault("NOTIFICATION_TIMEOUT_SECONDS", defaultNotificationTimeout)

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("APP_ENV")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("PAYMENT_EVENTS_EXCHANGE")
	_ = viper.BindEnv("REDIS_URL", "REDIS_URL", "PAYMENT_REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("PAYMENT_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("DASHBOARD_USERNAME")
	_ = viper.BindEnv("DASHBOARD_PASSWORD")
	_ = viper.BindEnv("DASHBOARD_PASSWORD_HASH")
	_ = viper.BindEnv("SESSION_TTL_HOURS")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("QR_IMAGE_SIZE")
	_ = viper.BindEnv("NOTIFICATION_TIMEOUT_SECONDS")

	// A missing .env file is fine; anything else is worth a warning.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.ServerPort = strings.TrimSpace(config.ServerPort)
	if config.ServerPort == "" {
		config.ServerPort = defaultServerPort
	}

	config.DatabaseURL = strings.TrimSpace(config.DatabaseURL)
	if config.DatabaseURL == "" {
		return config, errors.New("DATABASE_URL is required")
	}

	config.DashboardPasswordHash = strings.TrimSpace(config.DashboardPasswordHash)
	config.RabbitMQURL = strings.TrimSpace(config.RabbitMQURL)
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RedisRateLimitPrefix == "" {
		config.RedisRateLimitPrefix = defaultRateLimitPrefix
	}
	config.PaymentEventsExchange = strings.TrimSpace(config.PaymentEventsExchange)
	if config.PaymentEventsExchange == "" {
		config.PaymentEventsExchange = defaultPaymentEventsExchange
	}

	// Numeric keys are parsed here so a malformed value falls back to its
	// default instead of failing the whole load.
	config.PaymentRateLimitPerMinute = intSetting("PAYMENT_RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute)
	config.SessionTTLHours = intSetting("SESSION_TTL_HOURS", defaultSessionTTLHours)
	config.QRImageSize = intSetting("QR_IMAGE_SIZE", defaultQRImageSize)
	config.NotificationTimeoutSeconds = intSetting("NOTIFICATION_TIMEOUT_SECONDS", defaultNotificationTimeout)

	if config.SessionTTLHours <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive session ttl configured; using default\" session_ttl_hours=%d", config.SessionTTLHours)
		config.SessionTTLHours = defaultSessionTTLHours
	}
	if config.QRImageSize <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive qr image size configured; using default\" qr_image_size=%d", config.QRImageSize)
		config.QRImageSize = defaultQRImageSize
	}
	if config.NotificationTimeoutSeconds <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive notification timeout configured; using default\" notification_timeout_seconds=%d", config.NotificationTimeoutSeconds)
		config.NotificationTimeoutSeconds = defaultNotificationTimeout
	}
	if config.PaymentRateLimitPerMinute < 0 {
		log.Printf("level=warn component=config msg=\"negative payment rate limit configured; disabling\" payment_rate_limit_per_minute=%d", config.PaymentRateLimitPerMinute)
		config.PaymentRateLimitPerMinute = 0
	}

	return
}

// intSetting reads key as an integer, falling back to def with a warning when
// the value does not parse.
func intSetting(key string, def int) int {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("level=warn component=config msg=\"invalid %s; using default\" value=%q default=%d err=%v", key, raw, def, err)
		return def
	}
	return value
}
