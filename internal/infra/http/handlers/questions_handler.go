package handlers

import (
	"net/http"

	"github.com/xavierca1/lead-quiz/internal/usecase"
)

type QuestionsHandler struct {
	Quiz usecase.QuizProvider
}

func NewQuestionsHandler(quiz usecase.QuizProvider) *QuestionsHandler {
	return &QuestionsHandler{Quiz: quiz}
}

func (h *QuestionsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, h.Quiz.Quiz())
}
