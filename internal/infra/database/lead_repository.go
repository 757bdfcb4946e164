package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

// invalidTextRepresentation is raised when an id is not a valid uuid.
const invalidTextRepresentation = "22P02"

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
	).Scan(&lead.ID, &lead.CreatedAt)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT id, created_at, name, email, COALESCE(phone, '') FROM leads WHERE id = $1`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) List(ctx context.Context, q entity.ListQuery) ([]*entity.Lead, error) {
	query := `
		SELECT id, created_at, name, email, COALESCE(phone, '')
		FROM leads
		WHERE $1 = ''
			OR name ILIKE $2
			OR email ILIKE $2
			OR phone ILIKE $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, q.Term, likePattern(q.Term), q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead := &entity.Lead{}
		if err := rows.Scan(&lead.ID, &lead.CreatedAt, &lead.Name, &lead.Email, &lead.Phone); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// likePattern wraps term for a case-insensitive substring match, escaping
// the LIKE wildcards it may contain.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func isInvalidUUID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == invalidTextRepresentation
}
