package lexbridge

import "fmt"

// ValidationError indicates a malformed resolve request. It is the only
// resolution failure surfaced to callers.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid request: %s is required", e.Field)
}

// ProviderError indicates an external provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// PersistenceError indicates the durable cache storage could not be read or
// written. The cache logs these and keeps serving from memory.
type PersistenceError struct {
	Op    string // "load", "save" or "clear"
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error (%s): %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("persistence error (%s)", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// ImportError indicates a cache snapshot was rejected.
type ImportError struct {
	Reason string
	Cause  error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import rejected: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("import rejected: %s", e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
