package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

func TestBuildAdminQueryLimit(t *testing.T) {
	cases := map[string]int{
		"":      entity.DefaultListLimit,
		"abc":   entity.DefaultListLimit,
		"0":     entity.DefaultListLimit,
		"-5":    entity.DefaultListLimit,
		"1":     1,
		"50":    50,
		" 20 ":  20,
		"500":   500,
		"501":   entity.MaxListLimit,
		"99999": entity.MaxListLimit,
	}
	for raw, want := range cases {
		q := BuildAdminQuery(entity.ResourceLeads, "", raw)
		assert.Equal(t, want, q.Limit, "limit %q", raw)
	}
}

func TestBuildAdminQueryTerm(t *testing.T) {
	q := BuildAdminQuery(entity.ResourceLeads, "  taro ", "")
	assert.Equal(t, "taro", q.Term)
	assert.True(t, q.Filtered())
	assert.False(t, q.HasNumericTerm)

	q = BuildAdminQuery(entity.ResourceLeads, "  ", "")
	assert.False(t, q.Filtered())
}

func TestBuildAdminQueryNumericTermOnlyForResponses(t *testing.T) {
	q := BuildAdminQuery(entity.ResourceResponses, "090", "")
	assert.True(t, q.HasNumericTerm)
	assert.Equal(t, 90, q.NumericTerm)
	assert.Equal(t, "090", q.Term)

	q = BuildAdminQuery(entity.ResourceLeads, "090", "")
	assert.False(t, q.HasNumericTerm)

	q = BuildAdminQuery(entity.ResourceResponses, "self", "")
	assert.False(t, q.HasNumericTerm)
}

func TestListAdminLeads(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewListAdminUseCase(leads, new(MockResponseRepository))

	leads.On("List", mock.Anything, entity.ListQuery{Resource: entity.ResourceLeads, Term: "taro", Limit: 10}).
		Return([]*entity.Lead{testLead()}, nil)

	out, err := uc.Leads(context.Background(), "taro", "10")
	require.NoError(t, err)
	assert.Len(t, out.Rows, 1)
	leads.AssertExpectations(t)
}

func TestListAdminResponsesEmpty(t *testing.T) {
	responses := new(MockResponseRepository)
	uc := NewListAdminUseCase(new(MockLeadRepository), responses)
	responses.On("List", mock.Anything, mock.Anything).Return(nil, nil)

	out, err := uc.Responses(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotNil(t, out.Rows)
	assert.Empty(t, out.Rows)
}

func TestListAdminStoreError(t *testing.T) {
	responses := new(MockResponseRepository)
	uc := NewListAdminUseCase(new(MockLeadRepository), responses)
	responses.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := uc.Responses(context.Background(), "", "")
	assert.Equal(t, CodePersistenceError, ErrorCode(err))
	assert.Equal(t, "store error: timeout", err.Error())
}
