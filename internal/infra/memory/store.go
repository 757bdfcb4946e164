// Package memory is an in-process store for local runs and tests. Data is
// lost on restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

type Store struct {
	mu        sync.RWMutex
	leads     map[string]*entity.Lead
	responses []*entity.Response
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		leads: make(map[string]*entity.Lead),
		now:   time.Now,
	}
}

func (s *Store) Leads() *LeadRepository         { return &LeadRepository{s} }
func (s *Store) Responses() *ResponseRepository { return &ResponseRepository{s} }

// Ping always succeeds; it lets the health check treat every store alike.
func (s *Store) Ping(context.Context) error { return nil }

// ResponseCount is used by tests to assert nothing was written.
func (s *Store) ResponseCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.responses)
}

type LeadRepository struct{ s *Store }

func (r *LeadRepository) Create(_ context.Context, lead *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lead.ID = uuid.New().String()
	lead.CreatedAt = r.s.now()
	stored := *lead
	r.s.leads[lead.ID] = &stored
	return nil
}

func (r *LeadRepository) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lead, ok := r.s.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	copied := *lead
	return &copied, nil
}

func (r *LeadRepository) List(_ context.Context, q entity.ListQuery) ([]*entity.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Lead{}
	for _, lead := range r.s.leads {
		if q.Filtered() && !leadMatches(lead, q.Term) {
			continue
		}
		copied := *lead
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, q.Limit), nil
}

type ResponseRepository struct{ s *Store }

func (r *ResponseRepository) Create(_ context.Context, resp *entity.Response) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	resp.ID = uuid.New().String()
	resp.CreatedAt = r.s.now()
	stored := *resp
	stored.Lead = nil
	stored.Answers = make(map[string]int, len(resp.Answers))
	for k, v := range resp.Answers {
		stored.Answers[k] = v
	}
	r.s.responses = append(r.s.responses, &stored)
	return nil
}

func (r *ResponseRepository) List(_ context.Context, q entity.ListQuery) ([]*entity.Response, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*entity.Response{}
	// Walk backwards so equal timestamps keep newest-first order.
	for i := len(r.s.responses) - 1; i >= 0; i-- {
		stored := r.s.responses[i]
		lead, ok := r.s.leads[stored.LeadID]
		if !ok {
			continue
		}
		if q.Filtered() && !responseMatches(stored, lead, q) {
			continue
		}
		copied := *stored
		joined := *lead
		copied.Lead = &joined
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, q.Limit), nil
}

func leadMatches(lead *entity.Lead, term string) bool {
	return containsFold(lead.Name, term) ||
		containsFold(lead.Email, term) ||
		containsFold(lead.Phone, term)
}

func responseMatches(resp *entity.Response, lead *entity.Lead, q entity.ListQuery) bool {
	if leadMatches(lead, q.Term) || containsFold(string(resp.Bucket), q.Term) {
		return true
	}
	return q.HasNumericTerm && resp.Total == q.NumericTerm
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
