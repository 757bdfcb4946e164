package supabase

import (
	"time"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

type createLeadRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type createResponseRequest struct {
	LeadID  string         `json:"lead_id"`
	Total   int            `json:"total"`
	Bucket  string         `json:"bucket"`
	Answers map[string]int `json:"answers"`
}

// leadRow is what PostgREST returns for the leads table. Older deployments
// also echo the id as leadId; toEntity falls back to it.
type leadRow struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"leadId"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
}

func (r leadRow) toEntity() *entity.Lead {
	id := r.ID
	if id == "" {
		id = r.LeadID
	}
	lead := &entity.Lead{
		ID:        id,
		CreatedAt: r.CreatedAt,
		Name:      r.Name,
		Email:     r.Email,
	}
	if r.Phone != nil {
		lead.Phone = *r.Phone
	}
	return lead
}

type responseRow struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	LeadID    string         `json:"lead_id"`
	Total     int            `json:"total"`
	Bucket    string         `json:"bucket"`
	Answers   map[string]int `json:"answers"`
	Leads     *leadRow       `json:"leads"`
}

func (r responseRow) toEntity() *entity.Response {
	resp := &entity.Response{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		LeadID:    r.LeadID,
		Total:     r.Total,
		Bucket:    entity.Bucket(r.Bucket),
		Answers:   r.Answers,
	}
	if r.Leads != nil {
		resp.Lead = r.Leads.toEntity()
	}
	return resp
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}
