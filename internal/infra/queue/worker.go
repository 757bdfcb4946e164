package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ResultHandler processes one result event. Returning an error rejects the
// message, which the queue dead-letters to DLQName.
type ResultHandler func(ctx context.Context, event ResultEvent) error

// Consumer is the subset of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Handle  ResultHandler
	Logger  *zap.Logger
}

func NewWorker(ch Consumer, handle ResultHandler, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Handle: handle, Logger: logger}
}

// Start consumes queueName until ctx is done or the broker closes the
// delivery channel. Messages are acked manually.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // auto-ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.Logger.Info("worker waiting for result events", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.process(ctx, d)
		}
	}
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	var event ResultEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		// Malformed; requeueing would only loop.
		w.Logger.Warn("invalid result event", zap.String("message_id", d.MessageId), zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := w.Handle(ctx, event); err != nil {
		w.Logger.Warn("result event rejected",
			zap.String("response_id", event.ResponseID),
			zap.Error(err),
		)
		d.Nack(false, false)
		return
	}

	w.Logger.Debug("result event handled", zap.String("response_id", event.ResponseID))
	d.Ack(false)
}
