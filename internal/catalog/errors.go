package catalog

import "fmt"

// ErrorKind classifies a failed catalog call by the remote outcome.
type ErrorKind string

const (
	ErrAccessDenied ErrorKind = "access_denied"
	ErrMalformed    ErrorKind = "malformed"
	ErrConflict     ErrorKind = "conflict"
	ErrUnknown      ErrorKind = "unknown"
)

// SourceError is the translated, user-presentable failure of a snack source
// call. Handlers catch it at the boundary, show the message, and abort the
// in-progress action; it never reaches the end user as a raw error.
type SourceError struct {
	Kind    ErrorKind
	Message string
}

func (e *SourceError) Error() string {
	return e.Message
}

// ConfigurationError reports an unusable snack source configuration. It is
// fatal at startup and surfaced to operators, not end users.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("snack source configuration error: %s", e.Message)
}
