package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/infra/http/middleware"
	"github.com/xavierca1/lead-quiz/internal/usecase"
)

type SubmitHandler struct {
	UseCase *usecase.SubmitResponseUseCase
	Logger  *zap.Logger
}

func NewSubmitHandler(uc *usecase.SubmitResponseUseCase, logger *zap.Logger) *SubmitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitHandler{UseCase: uc, Logger: logger}
}

// Handle serves POST /api/submit. A persisted response is always a 200;
// failed notifications only show up in side_effects.
func (h *SubmitHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitResponseInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	middleware.RecordSubmission(string(out.Bucket))
	for _, se := range out.SideEffects {
		middleware.RecordSideEffect(se.Channel, se.Status)
	}

	writeJSON(w, http.StatusOK, out)
}
