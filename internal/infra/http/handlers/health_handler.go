package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function, such as (*sql.DB).PingContext.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ConnectionState reports whether a long-lived connection dropped.
type ConnectionState interface {
	IsClosed() bool
}

type HealthHandler struct {
	StoreName string
	Store     Pinger
	RabbitMQ  ConnectionState
	Mail      string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(storeName string, store Pinger, rabbitMQ ConnectionState, mailDriver string) *HealthHandler {
	return &HealthHandler{
		StoreName: storeName,
		Store:     store,
		RabbitMQ:  rabbitMQ,
		Mail:      mailDriver,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check store
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := h.Store.Ping(ctx)
		cancel()
		if err != nil {
			deps["store"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["store"] = "healthy"
		}
	} else {
		deps["store"] = "not configured"
	}
	if h.StoreName != "" {
		deps["store_driver"] = h.StoreName
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Mail != "" {
		deps["mail"] = h.Mail
	}

	status := "healthy"
	for _, key := range []string{"store", "rabbitmq"} {
		if v := deps[key]; v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
