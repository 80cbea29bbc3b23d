package lexbridge

import (
	"errors"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "text"}
	if err.Error() != "invalid request: text is required" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	err = &ValidationError{Field: "to", Message: "target language cannot be auto"}
	if err.Error() != "invalid request: to: target language cannot be auto" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestProviderError(t *testing.T) {
	cause := errors.New("status 429")
	err := &ProviderError{Message: "rate limited", Cause: cause, Retryable: true}

	if err.Error() != "provider error: rate limited: status 429" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	err2 := &ProviderError{Message: "empty response"}
	if err2.Error() != "provider error: empty response" {
		t.Errorf("unexpected error message: %s", err2.Error())
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("disk full")
	err := &PersistenceError{Op: "save", Cause: cause}

	if err.Error() != "persistence error (save): disk full" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestImportError(t *testing.T) {
	err := &ImportError{Reason: "unsupported version 2"}
	if err.Error() != "import rejected: unsupported version 2" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	var target *ImportError
	if !errors.As(error(err), &target) {
		t.Error("errors.As should match *ImportError")
	}
}
