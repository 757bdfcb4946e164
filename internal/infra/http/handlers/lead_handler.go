package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/infra/http/middleware"
	"github.com/xavierca1/lead-quiz/internal/usecase"
)

type LeadHandler struct {
	UseCase *usecase.CreateLeadUseCase
	Logger  *zap.Logger
}

func NewLeadHandler(uc *usecase.CreateLeadUseCase, logger *zap.Logger) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{UseCase: uc, Logger: logger}
}

// Create handles POST /api/lead.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusOK, out)
}
