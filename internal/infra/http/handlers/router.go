package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/infra/http/middleware"
)

type RouterConfig struct {
	Lead       *LeadHandler
	Validation *ValidationHandler
	Submit     *SubmitHandler
	Admin      *AdminHandler
	Questions  *QuestionsHandler
	Health     *HealthHandler

	AdminUser   string
	AdminPass   string
	CORSOrigins []string
	Timeout     time.Duration
	Logger      *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.Timeout > 0 {
		r.Use(chimw.Timeout(cfg.Timeout))
	}

	r.MethodNotAllowed(MethodNotAllowed)
	r.NotFound(NotFound)

	r.Get("/health", cfg.Health.Handle)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/questions.json", cfg.Questions.Handle)

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", cfg.Questions.Handle)
		r.Post("/lead", cfg.Lead.Create)
		r.Post("/lead/validate", cfg.Validation.Handle)
		r.Post("/submit", cfg.Submit.Handle)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminUser, cfg.AdminPass, cfg.Logger))
			r.Get("/leads", cfg.Admin.Leads)
			r.Get("/responses", cfg.Admin.Responses)
		})
	})

	return r
}
