package apperr

import "fmt"

// UpstreamError is a provider network or service failure. Detail carries the
// provider's own diagnostic payload when one was returned, so callers can
// tell "service unreachable" from "service rejected input".
type UpstreamError struct {
	Provider string
	Message  string
	Detail   any
}

func NewUpstreamError(provider, message string, detail any) *UpstreamError {
	return &UpstreamError{
		Provider: provider,
		Message:  message,
		Detail:   detail,
	}
}

func (e *UpstreamError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// MalformedResponseError means the provider call succeeded but its payload
// does not parse into the expected shape.
type MalformedResponseError struct {
	Provider string
	Message  string
	Raw      string
	Err      error
}

func NewMalformedResponseError(provider, message, raw string, err error) *MalformedResponseError {
	return &MalformedResponseError{
		Provider: provider,
		Message:  message,
		Raw:      raw,
		Err:      err,
	}
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
