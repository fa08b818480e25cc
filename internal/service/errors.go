package service

import (
	"fmt"
)

// APIError is a non-2xx reply or an embedded error object from the upstream.
type APIError struct {
	StatusCode int
	Message    string // error.message from the body, may be empty
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini API error (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("gemini API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// ParseError means the upstream body could not be decoded.
type ParseError struct {
	StatusCode int
	Raw        string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gemini returned invalid JSON (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
