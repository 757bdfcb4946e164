package entity

type Resource string

const (
	ResourceLeads     Resource = "leads"
	ResourceResponses Resource = "responses"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ListQuery is the store-neutral form of an admin read. Results are always
// ordered newest first.
//
// Leads match Term case-insensitively against name, email and phone.
// Responses match against the joined lead's name, email and phone, the
// bucket, and, when HasNumericTerm is set, total == NumericTerm.
type ListQuery struct {
	Resource       Resource
	Term           string
	NumericTerm    int
	HasNumericTerm bool
	Limit          int
}

func (q ListQuery) Filtered() bool {
	return q.Term != ""
}
