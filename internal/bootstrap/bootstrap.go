// Package bootstrap turns a Config into the concrete adapters shared by the
// API server and quizctl.
package bootstrap

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/config"
	"github.com/xavierca1/lead-quiz/internal/entity"
	"github.com/xavierca1/lead-quiz/internal/infra/database"
	"github.com/xavierca1/lead-quiz/internal/infra/http/handlers"
	"github.com/xavierca1/lead-quiz/internal/infra/integration/supabase"
	"github.com/xavierca1/lead-quiz/internal/infra/mail"
	"github.com/xavierca1/lead-quiz/internal/infra/memory"
	"github.com/xavierca1/lead-quiz/internal/infra/queue"
	"github.com/xavierca1/lead-quiz/internal/infra/quizconfig"
	"github.com/xavierca1/lead-quiz/internal/usecase"
)

type Store struct {
	Driver    string
	Leads     entity.LeadRepositoryInterface
	Responses entity.ResponseRepositoryInterface
	Pinger    handlers.Pinger
	DB        *sql.DB
}

func (s *Store) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// NewStore opens the store selected by STORE_DRIVER.
func NewStore(cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSupabase:
		client := supabase.NewClient(cfg.SupabaseServiceRole, cfg.SupabaseURL, cfg.HTTPTimeout)
		return &Store{
			Driver:    cfg.StoreDriver,
			Leads:     client.Leads(),
			Responses: client.Responses(),
			Pinger:    client,
		}, nil

	case config.StorePostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    cfg.StoreDriver,
			Leads:     database.NewLeadRepository(db),
			Responses: database.NewResponseRepository(db),
			Pinger:    handlers.PingFunc(db.PingContext),
			DB:        db,
		}, nil

	case config.StoreMemory:
		s := memory.NewStore()
		return &Store{
			Driver:    cfg.StoreDriver,
			Leads:     s.Leads(),
			Responses: s.Responses(),
			Pinger:    s,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// NewEmailService picks the sender selected by MAIL_DRIVER.
func NewEmailService(cfg *config.Config, logger *zap.Logger) (usecase.EmailService, error) {
	switch cfg.MailDriver {
	case config.MailResend:
		sender := mail.NewResendSender(cfg.ResendAPIKey, cfg.ResendURL, cfg.FromEmail, cfg.HTTPTimeout)
		if logger != nil {
			sender.Logger = logger
		}
		return sender, nil
	case config.MailSMTP:
		return mail.NewSMTPSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.FromEmail), nil
	case config.MailLog:
		return mail.NewLogSender(logger), nil
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
}

// LoadQuiz reads QUIZ_CONFIG_PATH.
func LoadQuiz(cfg *config.Config) (*quizconfig.Provider, error) {
	q, err := quizconfig.LoadFile(cfg.QuizConfigPath)
	if err != nil {
		return nil, err
	}
	return quizconfig.NewProvider(q), nil
}

// NewBroker dials RabbitMQ when AMQP_URL is set. A broker that cannot be
// reached is logged and left out; result events are then reported as
// skipped.
func NewBroker(cfg *config.Config, logger *zap.Logger) *queue.RabbitMQ {
	if cfg.AMQPURL == "" {
		return nil
	}
	rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
	if err != nil {
		logger.Warn("result events disabled", zap.Error(err))
		return nil
	}
	return rabbit
}

// Server holds everything the API process wires together.
type Server struct {
	Routes   *handlers.RouterConfig
	Store    *Store
	RabbitMQ *queue.RabbitMQ
}

func (s *Server) Close() {
	if s.RabbitMQ != nil {
		s.RabbitMQ.Close()
	}
	s.Store.Close()
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}

	quiz, err := LoadQuiz(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	emailService, err := NewEmailService(cfg, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	composer, err := mail.NewComposer()
	if err != nil {
		store.Close()
		return nil, err
	}

	rabbit := NewBroker(cfg, logger)

	// Keep the interfaces nil rather than wrapping a nil pointer.
	var (
		publisher usecase.ResultPublisher
		conn      handlers.ConnectionState
	)
	if rabbit != nil {
		publisher = queue.NewProducer(rabbit.Ch)
		conn = rabbit
	}

	createLeadUC := usecase.NewCreateLeadUseCase(store.Leads, logger)
	submitUC := usecase.NewSubmitResponseUseCase(
		store.Leads, store.Responses, quiz, composer, emailService, publisher,
		cfg.AdminEmail, cfg.NotifyTimeout, logger,
	)
	adminUC := usecase.NewListAdminUseCase(store.Leads, store.Responses)

	if !cfg.AdminConfigured() {
		logger.Warn("ADMIN_USER/ADMIN_PASS not set; admin listings will refuse every request")
	}
	if cfg.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL not set; admin notifications will be skipped")
	}

	return &Server{
		Routes: &handlers.RouterConfig{
			Lead:        handlers.NewLeadHandler(createLeadUC, logger),
			Validation:  handlers.NewValidationHandler(),
			Submit:      handlers.NewSubmitHandler(submitUC, logger),
			Admin:       handlers.NewAdminHandler(adminUC, logger),
			Questions:   handlers.NewQuestionsHandler(quiz),
			Health:      handlers.NewHealthHandler(store.Driver, store.Pinger, conn, cfg.MailDriver),
			AdminUser:   cfg.AdminUser,
			AdminPass:   cfg.AdminPass,
			CORSOrigins: cfg.CORSOrigins,
			Timeout:     cfg.HTTPTimeout,
			Logger:      logger,
		},
		Store:    store,
		RabbitMQ: rabbit,
	}, nil
}
