package api

import (
	"errors"
	"fmt"
	"net"
)

// ErrorKind separates failures to reach the store from failures the store
// reported itself.
type ErrorKind int

const (
	// KindTransport means the request never completed (connectivity,
	// timeout, malformed response).
	KindTransport ErrorKind = iota
	// KindStore means the store was reachable but rejected the request.
	KindStore
)

// Error is the typed failure returned by every Client method.
type Error struct {
	Kind       ErrorKind
	Message    string
	Detail     string // the store's {detail} body, when present
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text shown in the feedback banner. Store detail
// messages are surfaced verbatim; transport failures get a generic line
// because the raw error is only useful in the debug log.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindStore:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("The server rejected the request (HTTP %d)", e.StatusCode)
	default:
		if isTimeout(e.Cause) {
			return "Request timed out. Please try again."
		}
		return "Could not reach the contact server. Check your connection."
	}
}

func NewTransportError(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Cause: cause}
}

func NewStoreError(statusCode int, detail string) *Error {
	return &Error{
		Kind:       KindStore,
		Message:    fmt.Sprintf("store returned HTTP %d", statusCode),
		Detail:     detail,
		StatusCode: statusCode,
	}
}

// UserMessage extracts a presentable message from any error, preferring the
// typed store/transport taxonomy when available.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
