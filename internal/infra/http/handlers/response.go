package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/usecase"
)

const (
	codeInvalidJSON      = "INVALID_JSON"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeNotFound         = "NOT_FOUND"

	maxBodyBytes = 1 << 20
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUsecaseError maps a use case error onto its HTTP status. Anything
// untyped is treated as a persistence fault.
func writeUsecaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if de.Code == usecase.CodeLeadNotFound {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.Error("request failed", zap.String("code", te.Code), zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, usecase.CodePersistenceError, err.Error())
}

// decodeJSON reads one JSON object from the body. Malformed JSON is
// INVALID_JSON; well-formed JSON with the wrong value types is
// INVALID_PAYLOAD. It writes the error response itself and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidPayload,
			"invalid payload: "+field+" must be "+typeErr.Type.String())
	case errors.Is(err, io.EOF):
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, "request body is empty")
	default:
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, "invalid JSON: "+err.Error())
	}
	return false
}

// MethodNotAllowed and NotFound keep router fallbacks in the JSON error shape.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusNotFound, codeNotFound, "no route for "+r.URL.Path)
}
