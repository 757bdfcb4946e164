package usecase

import "errors"

const (
	CodeMissingField      = "MISSING_FIELD"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeInvalidPhone      = "INVALID_PHONE"
	CodeInvalidPayload    = "INVALID_PAYLOAD"
	CodeLeadNotFound      = "LEAD_NOT_FOUND"
	CodePersistenceError  = "PERSISTENCE_ERROR"
	CodeNotificationError = "NOTIFICATION_ERROR"
)

// DomainError is a client fault: the request is rejected before anything
// is written.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// TechnicalError is an upstream fault. Message carries the upstream text so
// operators can see what the store said.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of a DomainError or TechnicalError, or "" for
// anything else.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func invalidPayload(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidPayload, Message: "invalid payload: " + msg}
}
