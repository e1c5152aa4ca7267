package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"syscall"
)

// ErrorKind classifies an API failure for callers that branch on failure
// class rather than on status codes.
type ErrorKind string

const (
	// KindUnreachable: no response object at all (DNS failure, refused
	// connection, dead network).
	KindUnreachable ErrorKind = "unreachable"
	// KindTimeout: the request exceeded the transport deadline.
	KindTimeout ErrorKind = "timeout"
	// KindUnauthorized: 401. Handled globally in addition to being returned.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindValidation: 400 or 422, carrying a server-provided message.
	KindValidation ErrorKind = "validation"
	// KindNotFound: 404.
	KindNotFound ErrorKind = "not_found"
	// KindServer: 5xx and anything otherwise unclassifiable.
	KindServer ErrorKind = "server"
	// KindBusinessRule: the transport call succeeded but domain logic treats
	// the result as a failure (e.g. unverified-email login).
	KindBusinessRule ErrorKind = "business_rule"
)

// APIError is a classified request failure. Message is always populated and
// suitable for direct display to the user.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// KindOf returns the error kind, or "" when err is not an APIError.
func KindOf(err error) ErrorKind {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// Message resolves the user-facing text for a failed operation: the
// classified message when available, the raw error text otherwise, and the
// fallback as a last resort.
func Message(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// classifyTransport maps a round-trip failure (no HTTP response) to an
// APIError with a display-ready message.
func classifyTransport(err error) *APIError {
	var uerr *url.Error
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if errors.As(err, &uerr) && uerr.Timeout() {
		timedOut = true
	}
	if timedOut {
		return &APIError{
			Kind:    KindTimeout,
			Message: "Request timeout. The server is taking too long to respond.",
		}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &APIError{
			Kind:    KindUnreachable,
			Message: "Cannot connect to server. Please check if the backend is running.",
		}
	}
	return &APIError{
		Kind:    KindUnreachable,
		Message: "Network error. Cannot reach the server.",
	}
}

// classifyStatus maps an error status code plus response body to an APIError,
// preferring the server-provided message.
func classifyStatus(status int, body []byte) *APIError {
	msg := serverMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	kind := KindServer
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		kind = KindValidation
	case status == http.StatusNotFound:
		kind = KindNotFound
	}

	return &APIError{Kind: kind, Status: status, Message: msg}
}

// serverMessage pulls the human-readable message out of an error envelope.
// Backends answer with either {"message": ...} or {"error": ...}.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
