package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/config"
	"github.com/xavierca1/lead-quiz/internal/infra/http/handlers"
	"github.com/xavierca1/lead-quiz/internal/infra/mail"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreDriver:    config.StoreMemory,
		MailDriver:     config.MailLog,
		QuizConfigPath: filepath.Join("..", "..", "questions.json"),
		HTTPTimeout:    5 * time.Second,
		NotifyTimeout:  5 * time.Second,
	}
}

func TestNewServerMemory(t *testing.T) {
	srv, err := NewServer(memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer srv.Close()

	assert.Nil(t, srv.RabbitMQ)
	assert.Nil(t, srv.Routes.Health.RabbitMQ)

	router := handlers.NewRouter(*srv.Routes)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewServerBadQuizPath(t *testing.T) {
	cfg := memoryConfig()
	cfg.QuizConfigPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := NewServer(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewStoreUnknownDriver(t *testing.T) {
	_, err := NewStore(&config.Config{StoreDriver: "mongo"})
	assert.Error(t, err)
}

func TestNewEmailServiceDrivers(t *testing.T) {
	cfg := &config.Config{MailDriver: config.MailSMTP, MailHost: "smtp.example.com", MailPort: 587, FromEmail: "quiz@example.com"}
	svc, err := NewEmailService(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &mail.SMTPSender{}, svc)

	cfg.MailDriver = config.MailResend
	svc, err = NewEmailService(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &mail.ResendSender{}, svc)

	cfg.MailDriver = "carrier-pigeon"
	_, err = NewEmailService(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewBrokerWithoutURL(t *testing.T) {
	assert.Nil(t, NewBroker(&config.Config{}, zap.NewNop()))
}
