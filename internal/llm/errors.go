package llm

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// ProviderError wraps a transport or HTTP failure from a backend. Status is
// zero when the failure happened before an HTTP status was available.
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("provider request failed: %s", e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func wrapProviderErr(err error) *ProviderError {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &ProviderError{Status: gerr.Code, Message: gerr.Message, Err: err}
	}
	return &ProviderError{Message: err.Error(), Err: err}
}

// ParseError means no JSON payload could be located in the model output.
// Snippet carries a truncated prefix of the raw text for diagnostics.
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	return "no JSON payload found in model output"
}

// Error categories used to pick a user-facing remediation message.
const (
	CategoryAuth      = "auth"
	CategoryRateLimit = "rate_limit"
	CategoryNetwork   = "network"
	CategoryMalformed = "malformed_response"
	CategoryUnknown   = "unknown"
)

// Categorize maps a pipeline error to a remediation category by kind and
// message substring. Providers report auth and quota failures with wildly
// different envelopes, so substring matching is the pragmatic common ground.
func Categorize(err error) string {
	if err == nil {
		return CategoryUnknown
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return CategoryMalformed
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		switch provErr.Status {
		case 401, 403:
			return CategoryAuth
		case 429:
			return CategoryRateLimit
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "permission"):
		return CategoryAuth
	case strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429"):
		return CategoryRateLimit
	case strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "eof"):
		return CategoryNetwork
	}
	return CategoryUnknown
}
