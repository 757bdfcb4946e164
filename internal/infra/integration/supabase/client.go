package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

// invalidTextRepresentation is the Postgres code PostgREST relays when an
// id filter is not a valid uuid.
const invalidTextRepresentation = "22P02"

// Client talks to the Supabase REST endpoint (PostgREST) with the service
// role key. It implements both the lead and the response repository.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Leads and Responses expose the client under the two repository interfaces.
func (c *Client) Leads() *LeadRepository         { return &LeadRepository{c} }
func (c *Client) Responses() *ResponseRepository { return &ResponseRepository{c} }

type LeadRepository struct{ c *Client }

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	payload := []createLeadRequest{{
		Name:  lead.Name,
		Email: lead.Email,
		Phone: nullString(lead.Phone),
	}}

	var rows []leadRow
	if err := r.c.do(ctx, http.MethodPost, "leads", nil, payload, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no row returned from Supabase")
	}

	created := rows[0].toEntity()
	if created.ID == "" {
		return fmt.Errorf("no id returned from Supabase")
	}
	lead.ID = created.ID
	lead.CreatedAt = created.CreatedAt
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	q := url.Values{}
	q.Set("select", leadColumns)
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var rows []leadRow
	if err := r.c.do(ctx, http.MethodGet, "leads", q, nil, &rows); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == invalidTextRepresentation {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, entity.ErrLeadNotFound
	}
	return rows[0].toEntity(), nil
}

func (r *LeadRepository) List(ctx context.Context, q entity.ListQuery) ([]*entity.Lead, error) {
	q.Resource = entity.ResourceLeads

	var rows []leadRow
	if err := r.c.do(ctx, http.MethodGet, "leads", EncodeQuery(q), nil, &rows); err != nil {
		return nil, err
	}
	leads := make([]*entity.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, row.toEntity())
	}
	return leads, nil
}

type ResponseRepository struct{ c *Client }

func (r *ResponseRepository) Create(ctx context.Context, resp *entity.Response) error {
	payload := []createResponseRequest{{
		LeadID:  resp.LeadID,
		Total:   resp.Total,
		Bucket:  string(resp.Bucket),
		Answers: resp.Answers,
	}}

	var rows []responseRow
	if err := r.c.do(ctx, http.MethodPost, "responses", nil, payload, &rows); err != nil {
		return err
	}
	if len(rows) == 0 || rows[0].ID == "" {
		return fmt.Errorf("no row returned from Supabase")
	}
	resp.ID = rows[0].ID
	resp.CreatedAt = rows[0].CreatedAt
	return nil
}

func (r *ResponseRepository) List(ctx context.Context, q entity.ListQuery) ([]*entity.Response, error) {
	q.Resource = entity.ResourceResponses

	var rows []responseRow
	if err := r.c.do(ctx, http.MethodGet, "responses", EncodeQuery(q), nil, &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// APIError carries the status and body PostgREST answered with.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase error (%d): %s", e.Status, e.Message)
}

// Ping checks that the REST endpoint answers with the configured key.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")
	var rows []json.RawMessage
	return c.do(ctx, http.MethodGet, "leads", q, nil, &rows)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", table, err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Code != "" {
			apiErr.Code = eb.Code
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode supabase response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
