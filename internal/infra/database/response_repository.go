package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

type ResponseRepository struct {
	DB *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) Create(ctx context.Context, resp *entity.Response) error {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	query := `
		INSERT INTO responses (lead_id, total, bucket, answers)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING id, created_at
	`
	err = r.DB.QueryRowContext(ctx, query,
		resp.LeadID,
		resp.Total,
		string(resp.Bucket),
		string(answers),
	).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) List(ctx context.Context, q entity.ListQuery) ([]*entity.Response, error) {
	query := `
		SELECT r.id, r.created_at, r.lead_id, r.total, r.bucket, r.answers,
			l.id, l.created_at, l.name, l.email, COALESCE(l.phone, '')
		FROM responses r
		JOIN leads l ON l.id = r.lead_id
		WHERE $1 = ''
			OR l.name ILIKE $2
			OR l.email ILIKE $2
			OR l.phone ILIKE $2
			OR r.bucket ILIKE $2
			OR ($3::boolean AND r.total = $4::integer)
		ORDER BY r.created_at DESC
		LIMIT $5
	`

	rows, err := r.DB.QueryContext(ctx, query,
		q.Term, likePattern(q.Term), q.HasNumericTerm, q.NumericTerm, q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Response{}
	for rows.Next() {
		var (
			resp    entity.Response
			lead    entity.Lead
			bucket  string
			answers []byte
		)
		if err := rows.Scan(
			&resp.ID, &resp.CreatedAt, &resp.LeadID, &resp.Total, &bucket, &answers,
			&lead.ID, &lead.CreatedAt, &lead.Name, &lead.Email, &lead.Phone,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &resp.Answers); err != nil {
			return nil, fmt.Errorf("response %s has unreadable answers: %w", resp.ID, err)
		}
		resp.Bucket = entity.Bucket(bucket)
		resp.Lead = &lead
		out = append(out, &resp)
	}
	return out, rows.Err()
}
