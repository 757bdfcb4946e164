package supabase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

const (
	leadColumns     = "id,created_at,name,email,phone"
	responseColumns = "id,created_at,lead_id,total,bucket,answers,leads!inner(id,name,email,phone)"

	// noTotal keeps the numeric branch of the filter well-formed when the
	// search term is not a number. No response can have a negative total.
	noTotal = -999999
)

// EncodeQuery builds the PostgREST query string for an admin read.
func EncodeQuery(q entity.ListQuery) url.Values {
	v := url.Values{}
	v.Set("order", "created_at.desc")
	v.Set("limit", strconv.Itoa(q.Limit))

	switch q.Resource {
	case entity.ResourceResponses:
		v.Set("select", responseColumns)
		if q.Filtered() {
			total := noTotal
			if q.HasNumericTerm {
				total = q.NumericTerm
			}
			v.Set("or", orFilter(
				ilike("leads.name", q.Term),
				ilike("leads.email", q.Term),
				ilike("leads.phone", q.Term),
				ilike("bucket", q.Term),
				fmt.Sprintf("total.eq.%d", total),
			))
		}
	default:
		v.Set("select", leadColumns)
		if q.Filtered() {
			v.Set("or", orFilter(
				ilike("name", q.Term),
				ilike("email", q.Term),
				ilike("phone", q.Term),
			))
		}
	}
	return v
}

func orFilter(parts ...string) string {
	return "(" + strings.Join(parts, ",") + ")"
}

func ilike(column, term string) string {
	return column + ".ilike." + quoteValue("*"+term+"*")
}

// quoteValue double-quotes values that contain PostgREST reserved
// characters so a comma or parenthesis in the search term cannot break the
// or() expression.
func quoteValue(s string) string {
	if !strings.ContainsAny(s, `,.:()"\ `) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
