package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

func newTestStore() *Store {
	s := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func seed(t *testing.T, s *Store) (taro, hanako *entity.Lead) {
	t.Helper()
	ctx := context.Background()

	taro = &entity.Lead{Name: "Taro Yamada", Email: "taro@example.com", Phone: "090-1234-5678"}
	hanako = &entity.Lead{Name: "Hanako Sato", Email: "hanako@example.com", Phone: "03-5555-1234"}
	require.NoError(t, s.Leads().Create(ctx, taro))
	require.NoError(t, s.Leads().Create(ctx, hanako))

	require.NoError(t, s.Responses().Create(ctx, &entity.Response{
		LeadID: taro.ID, Total: 14, Bucket: entity.BucketSelfDriving, Answers: map[string]int{"q1": 2},
	}))
	require.NoError(t, s.Responses().Create(ctx, &entity.Response{
		LeadID: hanako.ID, Total: 9, Bucket: entity.BucketLackingRightHand, Answers: map[string]int{"q1": 0},
	}))
	return taro, hanako
}

func TestLeadCreateAssignsID(t *testing.T) {
	s := newTestStore()
	lead := &entity.Lead{Name: "Taro", Email: "taro@example.com"}

	require.NoError(t, s.Leads().Create(context.Background(), lead))

	assert.NotEmpty(t, lead.ID)
	found, err := s.Leads().FindByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taro", found.Name)
}

func TestLeadFindByIDNotFound(t *testing.T) {
	_, err := newTestStore().Leads().FindByID(context.Background(), "11111111-1111-1111-1111-111111111111")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestListLeadsNewestFirstAndLimit(t *testing.T) {
	s := newTestStore()
	seed(t, s)

	rows, err := s.Leads().List(context.Background(), entity.ListQuery{Resource: entity.ResourceLeads, Limit: 100})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hanako Sato", rows[0].Name)

	rows, err = s.Leads().List(context.Background(), entity.ListQuery{Resource: entity.ResourceLeads, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListLeadsCaseInsensitive(t *testing.T) {
	s := newTestStore()
	seed(t, s)

	rows, err := s.Leads().List(context.Background(), entity.ListQuery{Resource: entity.ResourceLeads, Term: "TARO", Limit: 100})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "taro@example.com", rows[0].Email)
}

func TestListResponsesPhoneSearch(t *testing.T) {
	s := newTestStore()
	taro, _ := seed(t, s)

	rows, err := s.Responses().List(context.Background(), entity.ListQuery{
		Resource: entity.ResourceResponses, Term: "090", NumericTerm: 90, HasNumericTerm: true, Limit: 100,
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, taro.ID, rows[0].LeadID)
	require.NotNil(t, rows[0].Lead)
	assert.Contains(t, rows[0].Lead.Phone, "090")
}

func TestListResponsesBucketAndTotal(t *testing.T) {
	s := newTestStore()
	seed(t, s)

	rows, err := s.Responses().List(context.Background(), entity.ListQuery{
		Resource: entity.ResourceResponses, Term: "lacking", Limit: 100,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 9, rows[0].Total)

	rows, err = s.Responses().List(context.Background(), entity.ListQuery{
		Resource: entity.ResourceResponses, Term: "14", NumericTerm: 14, HasNumericTerm: true, Limit: 100,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.BucketSelfDriving, rows[0].Bucket)
}

func TestStoredResponseIsIsolatedFromCaller(t *testing.T) {
	s := newTestStore()
	taro, _ := seed(t, s)
	answers := map[string]int{"q1": 1}
	require.NoError(t, s.Responses().Create(context.Background(), &entity.Response{
		LeadID: taro.ID, Total: 1, Bucket: entity.BucketLackingRightHand, Answers: answers,
	}))

	answers["q1"] = 2

	rows, err := s.Responses().List(context.Background(), entity.ListQuery{Resource: entity.ResourceResponses, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rows[0].Answers["q1"])
	assert.Equal(t, 3, s.ResponseCount())
}
