package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means the remote service rejected the credential.
	// No further call can succeed, so the session ends.
	ErrUnauthorized = errors.New("authentication rejected")

	// ErrMalformedResponse covers both non-JSON bodies and JSON without a reply.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is a non-2xx answer from the remote service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP Error: %d", e.StatusCode)
	if e.Message != "" {
		msg += " - " + e.Message
	}
	return msg
}

// Is makes a 401 StatusError match ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// NewStatusError builds the error for a failed HTTP exchange.
func NewStatusError(statusCode int, message string) error {
	return &StatusError{StatusCode: statusCode, Message: message}
}

// IsFatal reports whether err must end the session.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// FormatError renders a recoverable failure as the text shown to the user.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}
