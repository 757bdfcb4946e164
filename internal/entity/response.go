package entity

import (
	"context"
	"time"
)

// Response is one scored quiz submission. It is written once and never updated.
type Response struct {
	ID        string         `json:"id"`
	LeadID    string         `json:"lead_id"`
	Total     int            `json:"total"`
	Bucket    Bucket         `json:"bucket"`
	Answers   map[string]int `json:"answers"`
	CreatedAt time.Time      `json:"created_at"`

	// Lead is only populated on admin reads that join the owning lead.
	Lead *Lead `json:"leads,omitempty"`
}

func NewResponse(leadID string, result Result, answers map[string]int) *Response {
	copied := make(map[string]int, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	return &Response{
		LeadID:  leadID,
		Total:   result.Total,
		Bucket:  result.Bucket,
		Answers: copied,
	}
}

type ResponseRepositoryInterface interface {
	// Create stores the response and fills in the ID and CreatedAt assigned by the store.
	Create(ctx context.Context, r *Response) error
	// List returns responses with Lead joined, newest first.
	List(ctx context.Context, q ListQuery) ([]*Response, error)
}
