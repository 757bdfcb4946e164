package handlers

import (
	"net/http"

	"github.com/xavierca1/lead-quiz/internal/usecase"
)

// ValidationHandler runs the contact form checks without touching the
// store, so the page can report errors before the user submits.
type ValidationHandler struct{}

func NewValidationHandler() *ValidationHandler {
	return &ValidationHandler{}
}

func (h *ValidationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	if err := usecase.ValidateLead(input.Name, input.Email, input.Phone); err != nil {
		writeUsecaseError(w, nil, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
