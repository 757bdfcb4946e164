package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

type CreateLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Logger *zap.Logger
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, logger *zap.Logger) *CreateLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateLeadUseCase{Repo: repo, Logger: logger}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if err := ValidateLead(input.Name, input.Email, input.Phone); err != nil {
		return nil, err
	}

	lead := entity.NewLead(input.Name, input.Email, input.Phone)
	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: CodePersistenceError, Message: err.Error(), Err: err}
	}
	if lead.ID == "" {
		return nil, &TechnicalError{Code: CodePersistenceError, Message: "store returned no lead id"}
	}

	uc.Logger.Info("lead created", zap.String("lead_id", lead.ID))

	return &CreateLeadOutput{
		OK:    true,
		ID:    lead.ID,
		Name:  lead.Name,
		Email: lead.Email,
		Phone: lead.Phone,
	}, nil
}
