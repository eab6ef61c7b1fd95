package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// SessionExpiredError signals that the cached Google credential was rejected.
// It is the only error that tears down the whole session.
type SessionExpiredError struct {
	ErrorMessage
}

// TransientIOError covers network/API failures other than auth. The triggering
// action may be re-invoked manually; nothing retries automatically.
type TransientIOError struct {
	ErrorMessage
	Service string
}

// InsufficientScopeError is a collaborator call rejected for missing OAuth
// grants. Surfaced separately so the UI can prompt a re-auth instead of
// showing the generic failure message.
type InsufficientScopeError struct {
	ErrorMessage
	Service string
}

// ParseError marks a malformed AI-oracle response. Services swallow it at the
// boundary and return the documented empty fallback; it never crosses a handler.
type ParseError struct {
	ErrorMessage
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewSessionExpiredError() *SessionExpiredError {
	return &SessionExpiredError{
		ErrorMessage: ErrorMessage{Message: "google session expired, sign in again"},
	}
}

func NewTransientIOError(service, message string) *TransientIOError {
	return &TransientIOError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
	}
}

func NewInsufficientScopeError(service string) *InsufficientScopeError {
	return &InsufficientScopeError{
		ErrorMessage: ErrorMessage{Message: "missing authorization scope for " + service + ", re-authenticate to grant it"},
		Service:      service,
	}
}

func NewParseError(message string) *ParseError {
	return &ParseError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}
