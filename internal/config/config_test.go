package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_ENV", "HTTP_ADDR", "STORE_DRIVER", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE",
	"DATABASE_URL", "MAIL_DRIVER", "RESEND_API_KEY", "RESEND_URL", "MAIL_HOST",
	"MAIL_PORT", "MAIL_USER", "MAIL_PASS", "FROM_EMAIL", "ADMIN_EMAIL", "ADMIN_USER",
	"ADMIN_PASS", "AMQP_URL", "QUIZ_CONFIG_PATH", "CORS_ORIGINS", "HTTP_TIMEOUT",
	"NOTIFY_TIMEOUT",
}

// setEnv blanks every key, which getEnv reads as unset, then applies env.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestFromEnvMemoryAndLog(t *testing.T) {
	setEnv(t, map[string]string{
		"STORE_DRIVER":   "memory",
		"MAIL_DRIVER":    "log",
		"MAIL_PORT":      "587",
		"HTTP_TIMEOUT":   "5s",
		"NOTIFY_TIMEOUT": "20s",
		"CORS_ORIGINS":   "http://localhost:5173, https://quiz.example.com,",
		"ADMIN_EMAIL":    " owner@example.com ",
	})

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, MailLog, cfg.MailDriver)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 20*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://quiz.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "owner@example.com", cfg.AdminEmail)
	assert.False(t, cfg.AdminConfigured())
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
}

func TestFromEnvDevelopmentOptIn(t *testing.T) {
	setEnv(t, map[string]string{
		"APP_ENV": "development", "STORE_DRIVER": "memory", "MAIL_DRIVER": "log",
	})
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
}

func TestFromEnvSupabaseRequiresCredentials(t *testing.T) {
	setEnv(t, map[string]string{
		"STORE_DRIVER": "supabase",
		"SUPABASE_URL": "https://abc.supabase.co/",
		"MAIL_DRIVER":  "log",
		"MAIL_PORT":    "587",
		"HTTP_TIMEOUT": "5s", "NOTIFY_TIMEOUT": "5s",
	})
	_, err := FromEnv()
	assert.ErrorContains(t, err, "SUPABASE_SERVICE_ROLE")

	t.Setenv("SUPABASE_SERVICE_ROLE", "service-role")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
}

func TestFromEnvPostgresRequiresURL(t *testing.T) {
	setEnv(t, map[string]string{
		"STORE_DRIVER": "postgres", "MAIL_DRIVER": "log", "MAIL_PORT": "587",
		"HTTP_TIMEOUT": "5s", "NOTIFY_TIMEOUT": "5s",
	})
	_, err := FromEnv()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestFromEnvMailDrivers(t *testing.T) {
	base := map[string]string{
		"STORE_DRIVER": "memory", "MAIL_PORT": "587",
		"HTTP_TIMEOUT": "5s", "NOTIFY_TIMEOUT": "5s",
	}

	env := copyEnv(base, "MAIL_DRIVER", "resend")
	setEnv(t, env)
	_, err := FromEnv()
	assert.ErrorContains(t, err, "RESEND_API_KEY")

	t.Setenv("RESEND_API_KEY", "re_123")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "FROM_EMAIL")

	t.Setenv("FROM_EMAIL", "quiz@example.com")
	_, err = FromEnv()
	assert.NoError(t, err)

	t.Setenv("MAIL_DRIVER", "smtp")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "MAIL_HOST")

	t.Setenv("MAIL_DRIVER", "pigeon")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "MAIL_DRIVER")
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	base := map[string]string{
		"STORE_DRIVER": "memory", "MAIL_DRIVER": "log", "MAIL_PORT": "587",
		"HTTP_TIMEOUT": "5s", "NOTIFY_TIMEOUT": "5s",
	}

	setEnv(t, copyEnv(base, "MAIL_PORT", "smtp"))
	_, err := FromEnv()
	assert.ErrorContains(t, err, "MAIL_PORT")

	setEnv(t, copyEnv(base, "HTTP_TIMEOUT", "soon"))
	_, err = FromEnv()
	assert.ErrorContains(t, err, "HTTP_TIMEOUT")

	setEnv(t, copyEnv(base, "STORE_DRIVER", "mongo"))
	_, err = FromEnv()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestAdminConfigured(t *testing.T) {
	assert.True(t, (&Config{AdminUser: "admin", AdminPass: "secret"}).AdminConfigured())
	assert.False(t, (&Config{AdminUser: "admin"}).AdminConfigured())
}

func copyEnv(base map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}
