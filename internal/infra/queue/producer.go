package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ResultEvent is published once per persisted response.
type ResultEvent struct {
	ResponseID string         `json:"response_id"`
	LeadID     string         `json:"lead_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone,omitempty"`
	Total      int            `json:"total"`
	Max        int            `json:"max"`
	Bucket     string         `json:"bucket"`
	Answers    map[string]int `json:"answers"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Publisher is the subset of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type ResultProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *ResultProducer {
	return &ResultProducer{Ch: ch}
}

func (p *ResultProducer) PublishResult(ctx context.Context, event ResultEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode result event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ResponseID,
			Timestamp:    event.OccurredAt,
			Type:         RoutingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
