package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultResendURL = "https://api.resend.com"

// ResendSender delivers through the Resend transactional email API.
type ResendSender struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client

	Logger *zap.Logger
}

func NewResendSender(apiKey, baseURL, from string, timeout time.Duration) *ResendSender {
	if baseURL == "" {
		baseURL = DefaultResendURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: timeout},
		Logger:  zap.NewNop(),
	}
}

func (s *ResendSender) Send(ctx context.Context, to, subject, html string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("resend: empty recipient")
	}

	jsonBody, err := json.Marshal(resendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend rejected email (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// A 2xx means the email was accepted; the id is informational only.
	var out resendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.Logger.Debug("resend accepted email without readable id", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil
	}
	s.Logger.Debug("resend accepted email", zap.String("id", out.ID), zap.String("to", to))
	return nil
}
