package usecase

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-quiz/internal/entity"
	"github.com/xavierca1/lead-quiz/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, q entity.ListQuery) ([]*entity.Lead, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, r *entity.Response) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResponseRepository) List(ctx context.Context, q entity.ListQuery) ([]*entity.Response, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Response), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishResult(ctx context.Context, event queue.ResultEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// stubComposer renders predictable subjects so tests can route on them.
type stubComposer struct {
	err error
}

func (c stubComposer) UserResult(lead *entity.Lead, resp *entity.Response, max int) (Message, error) {
	if c.err != nil {
		return Message{}, c.err
	}
	return Message{Subject: "user", HTML: fmt.Sprintf("%d/%d %s", resp.Total, max, resp.Bucket)}, nil
}

func (c stubComposer) AdminNotice(lead *entity.Lead, resp *entity.Response, max int) (Message, error) {
	if c.err != nil {
		return Message{}, c.err
	}
	return Message{Subject: "admin", HTML: resp.ID}, nil
}

type staticQuiz struct {
	quiz *entity.Quiz
}

func (s staticQuiz) Quiz() *entity.Quiz { return s.quiz }
