package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

// BuildAdminQuery turns the raw q and limit query parameters into a
// ListQuery. A missing, non-numeric or non-positive limit falls back to the
// default; anything above the maximum is clamped.
func BuildAdminQuery(resource entity.Resource, term, limit string) entity.ListQuery {
	q := entity.ListQuery{
		Resource: resource,
		Term:     strings.TrimSpace(term),
		Limit:    parseLimit(limit),
	}
	if q.Resource == entity.ResourceResponses && q.Term != "" {
		if n, err := strconv.Atoi(q.Term); err == nil {
			q.NumericTerm = n
			q.HasNumericTerm = true
		}
	}
	return q
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return entity.DefaultListLimit
	}
	if n > entity.MaxListLimit {
		return entity.MaxListLimit
	}
	return n
}

type ListAdminUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	ResponseRepo entity.ResponseRepositoryInterface
}

func NewListAdminUseCase(leadRepo entity.LeadRepositoryInterface, responseRepo entity.ResponseRepositoryInterface) *ListAdminUseCase {
	return &ListAdminUseCase{LeadRepo: leadRepo, ResponseRepo: responseRepo}
}

func (uc *ListAdminUseCase) Leads(ctx context.Context, term, limit string) (*ListLeadsOutput, error) {
	rows, err := uc.LeadRepo.List(ctx, BuildAdminQuery(entity.ResourceLeads, term, limit))
	if err != nil {
		return nil, &TechnicalError{Code: CodePersistenceError, Message: "store error: " + err.Error(), Err: err}
	}
	if rows == nil {
		rows = []*entity.Lead{}
	}
	return &ListLeadsOutput{Rows: rows}, nil
}

func (uc *ListAdminUseCase) Responses(ctx context.Context, term, limit string) (*ListResponsesOutput, error) {
	rows, err := uc.ResponseRepo.List(ctx, BuildAdminQuery(entity.ResourceResponses, term, limit))
	if err != nil {
		return nil, &TechnicalError{Code: CodePersistenceError, Message: "store error: " + err.Error(), Err: err}
	}
	if rows == nil {
		rows = []*entity.Response{}
	}
	return &ListResponsesOutput{Rows: rows}, nil
}
