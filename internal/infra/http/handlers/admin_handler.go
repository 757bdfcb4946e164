package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/infra/export"
	"github.com/xavierca1/lead-quiz/internal/usecase"
)

// AdminHandler serves the admin listings. It sits behind middleware.AdminAuth.
type AdminHandler struct {
	UseCase *usecase.ListAdminUseCase
	Logger  *zap.Logger
}

func NewAdminHandler(uc *usecase.ListAdminUseCase, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{UseCase: uc, Logger: logger}
}

// Leads handles GET /api/admin/leads?q=&limit=&format=csv.
func (h *AdminHandler) Leads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.UseCase.Leads(r.Context(), q.Get("q"), q.Get("limit"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	if wantsCSV(r) {
		setCSVHeaders(w, "leads")
		if err := export.WriteLeads(w, out.Rows); err != nil {
			h.Logger.Error("csv export failed", zap.String("resource", "leads"), zap.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Responses handles GET /api/admin/responses?q=&limit=&format=csv. Rows
// carry the joined lead under "leads".
func (h *AdminHandler) Responses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.UseCase.Responses(r.Context(), q.Get("q"), q.Get("limit"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	if wantsCSV(r) {
		setCSVHeaders(w, "responses")
		if err := export.WriteResponses(w, out.Rows); err != nil {
			h.Logger.Error("csv export failed", zap.String("resource", "responses"), zap.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

func setCSVHeaders(w http.ResponseWriter, resource string) {
	name := fmt.Sprintf("%s-%s.csv", resource, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
}
