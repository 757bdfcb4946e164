// Package export renders admin listings as CSV for spreadsheet use.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

var (
	LeadHeader     = []string{"id", "name", "email", "phone", "created_at"}
	ResponseHeader = []string{"id", "lead_id", "name", "email", "phone", "total", "bucket", "answers", "created_at"}
)

func WriteLeads(w io.Writer, rows []*entity.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LeadHeader); err != nil {
		return err
	}
	for _, l := range rows {
		record := []string{l.ID, l.Name, l.Email, l.Phone, timestamp(l.CreatedAt)}
		if err := cw.Write(sanitize(record)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteResponses(w io.Writer, rows []*entity.Response) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResponseHeader); err != nil {
		return err
	}
	for _, r := range rows {
		answers, err := json.Marshal(r.Answers)
		if err != nil {
			return err
		}
		var name, email, phone string
		if r.Lead != nil {
			name, email, phone = r.Lead.Name, r.Lead.Email, r.Lead.Phone
		}
		record := []string{
			r.ID, r.LeadID, name, email, phone,
			strconv.Itoa(r.Total), string(r.Bucket), string(answers), timestamp(r.CreatedAt),
		}
		if err := cw.Write(sanitize(record)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// sanitize neutralizes cells a spreadsheet would evaluate as formulas.
// Phone numbers keep their leading plus sign.
func sanitize(record []string) []string {
	for i, v := range record {
		if v == "" {
			continue
		}
		switch v[0] {
		case '=', '@', '\t', '\r':
			record[i] = "'" + v
		case '+', '-':
			if strings.Trim(v, "0123456789+- ") != "" {
				record[i] = "'" + v
			}
		}
	}
	return record
}
