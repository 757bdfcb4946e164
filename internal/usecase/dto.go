package usecase

import "github.com/xavierca1/lead-quiz/internal/entity"

type CreateLeadInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateLeadOutput is the one lead schema returned to clients. Adapters
// normalize whatever the store sends back into it.
type CreateLeadOutput struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type SubmitResponseInput struct {
	LeadID  string         `json:"leadId" validate:"required"`
	Total   *int           `json:"total" validate:"required,min=0"`
	Bucket  entity.Bucket  `json:"bucket" validate:"required,oneof=self-driving lacking-right-hand"`
	Answers map[string]int `json:"answers" validate:"required,min=1,dive,keys,required,endkeys,min=0,max=2"`
}

const (
	SideEffectSent    = "sent"
	SideEffectSkipped = "skipped"
	SideEffectFailed  = "failed"
)

const (
	ChannelUserEmail   = "user_email"
	ChannelAdminEmail  = "admin_email"
	ChannelResultEvent = "result_event"
)

// SideEffect reports one best-effort step that ran after the response was
// persisted.
type SideEffect struct {
	Channel string `json:"channel"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type SubmitResponseOutput struct {
	OK          bool          `json:"ok"`
	ID          string        `json:"id"`
	LeadID      string        `json:"lead_id"`
	Total       int           `json:"total"`
	Bucket      entity.Bucket `json:"bucket"`
	SideEffects []SideEffect  `json:"side_effects"`
}

// Failed reports whether any side effect failed.
func (o *SubmitResponseOutput) Failed() bool {
	for _, se := range o.SideEffects {
		if se.Status == SideEffectFailed {
			return true
		}
	}
	return false
}

type ListLeadsOutput struct {
	Rows []*entity.Lead `json:"rows"`
}

type ListResponsesOutput struct {
	Rows []*entity.Response `json:"rows"`
}
