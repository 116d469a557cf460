package domain

// ValidationError is a client-facing failure carrying per-field messages. The
// HTTP layer renders it as a 422 with the field map intact; everything else
// that goes wrong stays an opaque error.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a single-field validation failure.
func NewValidationError(message, field, detail string) *ValidationError {
	return &ValidationError{
		Message: message,
		Fields:  map[string]string{field: detail},
	}
}
