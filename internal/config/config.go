package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	AuthCookieSecure bool

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string

	MailQueueSize int
}

// Load reads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_SERVICE", "comercio")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "comercio")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM", "ventas@comercio.local")
	v.SetDefault("SMTP_FROM_NAME", "Comercio")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "admin@comercio.local")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "admin")
	v.SetDefault("MAIL_QUEUE_SIZE", 64)

	environment := v.GetString("ENVIRONMENT")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = v.GetBool("AUTH_COOKIE_SECURE")
	}

	return Config{
		AppName:          v.GetString("APP_SERVICE"),
		AppVersion:       v.GetString("APP_VERSION"),
		Environment:      environment,
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		AuthCookieSecure: authCookieSecure,

		DBType:     v.GetString("DATABASE_TYPE"),
		DBHost:     v.GetString("DATABASE_HOST"),
		DBPort:     v.GetString("DATABASE_PORT"),
		DBName:     v.GetString("DATABASE_NAME"),
		DBUser:     v.GetString("DATABASE_USER"),
		DBPassword: v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:  v.GetString("DATABASE_SSLMODE"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),
		SMTPFromName: v.GetString("SMTP_FROM_NAME"),

		BootstrapAdminEmail:    v.GetString("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),

		MailQueueSize: v.GetInt("MAIL_QUEUE_SIZE"),
	}
}
