package usecase

import (
	"context"

	"github.com/xavierca1/lead-quiz/internal/entity"
	"github.com/xavierca1/lead-quiz/internal/infra/queue"
)

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
}

type EmailService interface {
	Send(ctx context.Context, to, subject, html string) error
}

type NotificationComposer interface {
	UserResult(lead *entity.Lead, resp *entity.Response, max int) (Message, error)
	AdminNotice(lead *entity.Lead, resp *entity.Response, max int) (Message, error)
}

type ResultPublisher interface {
	PublishResult(ctx context.Context, event queue.ResultEvent) error
}

type QuizProvider interface {
	Quiz() *entity.Quiz
}
