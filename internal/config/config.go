package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	MailResend = "resend"
	MailSMTP   = "smtp"
	MailLog    = "log"
)

type Config struct {
	Env      string
	HTTPAddr string

	StoreDriver         string
	SupabaseURL         string
	SupabaseServiceRole string
	DatabaseURL         string

	MailDriver   string
	ResendAPIKey string
	ResendURL    string
	MailHost     string
	MailPort     int
	MailUser     string
	MailPass     string
	FromEmail    string
	AdminEmail   string

	AdminUser string
	AdminPass string

	AMQPURL        string
	QuizConfigPath string
	CORSOrigins    []string

	HTTPTimeout   time.Duration
	NotifyTimeout time.Duration
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// AdminConfigured reports whether the admin gate has credentials to check.
func (c *Config) AdminConfigured() bool { return c.AdminUser != "" && c.AdminPass != "" }

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment only.
func FromEnv() (*Config, error) {
	mailPort, err := strconv.Atoi(getEnv("MAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("MAIL_PORT must be a number: %w", err)
	}
	httpTimeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_TIMEOUT: %w", err)
	}
	notifyTimeout, err := time.ParseDuration(getEnv("NOTIFY_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "production"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", StoreSupabase)),
		SupabaseURL:         strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseServiceRole: getEnv("SUPABASE_SERVICE_ROLE", ""),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MailDriver:          strings.ToLower(getEnv("MAIL_DRIVER", MailResend)),
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		ResendURL:           getEnv("RESEND_URL", ""),
		MailHost:            getEnv("MAIL_HOST", ""),
		MailPort:            mailPort,
		MailUser:            getEnv("MAIL_USER", ""),
		MailPass:            getEnv("MAIL_PASS", ""),
		FromEmail:           getEnv("FROM_EMAIL", ""),
		AdminEmail:          strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		AdminUser:           getEnv("ADMIN_USER", ""),
		AdminPass:           getEnv("ADMIN_PASS", ""),
		AMQPURL:             getEnv("AMQP_URL", ""),
		QuizConfigPath:      getEnv("QUIZ_CONFIG_PATH", "questions.json"),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "*")),
		HTTPTimeout:         httpTimeout,
		NotifyTimeout:       notifyTimeout,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRole == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE are required when STORE_DRIVER=%s", StoreSupabase)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.MailDriver {
	case MailResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when MAIL_DRIVER=%s", MailResend)
		}
	case MailSMTP:
		if c.MailHost == "" {
			return fmt.Errorf("MAIL_HOST is required when MAIL_DRIVER=%s", MailSMTP)
		}
	case MailLog:
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver)
	}

	if c.MailDriver != MailLog && c.FromEmail == "" {
		return fmt.Errorf("FROM_EMAIL is required when MAIL_DRIVER=%s", c.MailDriver)
	}
	return nil
}

// getEnv treats an empty variable like an unset one.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
