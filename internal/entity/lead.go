package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLead trims the contact fields. Validation lives in the usecase layer.
func NewLead(name, email, phone string) *Lead {
	return &Lead{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}
}

type LeadRepositoryInterface interface {
	// Create stores the lead and fills in the ID and CreatedAt assigned by the store.
	Create(ctx context.Context, lead *Lead) error
	// FindByID returns ErrLeadNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, q ListQuery) ([]*Lead, error)
}
