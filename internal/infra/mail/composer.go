package mail

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/xavierca1/lead-quiz/internal/entity"
	"github.com/xavierca1/lead-quiz/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	SubjectUserResult  = "Your leadership check result"
	SubjectAdminNotice = "[Notice] New quiz result recorded"
	defaultGreeting    = "Dear participant"
)

// Composer renders the result emails. It does no I/O after construction.
type Composer struct {
	tmpl *template.Template
}

func NewComposer() (*Composer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Composer{tmpl: t}, nil
}

func (c *Composer) UserResult(lead *entity.Lead, resp *entity.Response, max int) (usecase.Message, error) {
	name := strings.TrimSpace(lead.Name)
	if name == "" {
		name = defaultGreeting
	}
	body, err := c.render("result.html", resultEmailData{
		Name:        name,
		Total:       resp.Total,
		Max:         max,
		BucketLabel: resp.Bucket.Label(),
	})
	if err != nil {
		return usecase.Message{}, err
	}
	return usecase.Message{Subject: SubjectUserResult, HTML: body}, nil
}

func (c *Composer) AdminNotice(lead *entity.Lead, resp *entity.Response, max int) (usecase.Message, error) {
	answers, err := json.MarshalIndent(resp.Answers, "", "  ")
	if err != nil {
		return usecase.Message{}, fmt.Errorf("failed to encode answers: %w", err)
	}
	body, err := c.render("admin.html", adminEmailData{
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Total:       resp.Total,
		Max:         max,
		BucketLabel: resp.Bucket.Label(),
		LeadID:      lead.ID,
		ResponseID:  resp.ID,
		Answers:     string(answers),
	})
	if err != nil {
		return usecase.Message{}, err
	}
	return usecase.Message{Subject: SubjectAdminNotice, HTML: body}, nil
}

func (c *Composer) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := c.tmpl.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return body.String(), nil
}
