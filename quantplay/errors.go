package quantplay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Kind classifies a client error into one of the failure categories the
// caller can act on.
type Kind int

const (
	// KindAuthentication means client construction was refused because the
	// API key is missing or empty. Not retryable.
	KindAuthentication Kind = iota + 1
	// KindAPIRequest means the service responded with a failure, either a
	// non-2xx status or a success status carrying an explicit error marker.
	KindAPIRequest
	// KindNetwork means the transport could not complete the request
	// (DNS failure, connection refused, reset).
	KindNetwork
	// KindTimeout means the configured timeout elapsed before completion.
	KindTimeout
	// KindParse means the response body could not be decoded.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAPIRequest:
		return "api_request"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Error is a classified client error. Exactly one of the five kinds applies;
// StatusCode and Message are set for KindAPIRequest, Timeout for KindTimeout
// and Err for wrapped transport or decoder failures.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Timeout    time.Duration
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAuthentication:
		return errInvalidAPIKey
	case KindAPIRequest:
		return fmt.Sprintf(errAPIRequestFailed, e.StatusCode, e.Message)
	case KindNetwork:
		return fmt.Sprintf(errNetworkFailure, e.Err)
	case KindTimeout:
		return fmt.Sprintf(errTimeoutElapsed, e.Timeout)
	case KindParse:
		return fmt.Sprintf(errParseFailure, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newAuthenticationError() *Error {
	return &Error{Kind: KindAuthentication}
}

func newAPIRequestError(statusCode int, message string) *Error {
	return &Error{Kind: KindAPIRequest, StatusCode: statusCode, Message: message}
}

func newNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func newTimeoutError(timeout time.Duration, err error) *Error {
	return &Error{Kind: KindTimeout, Timeout: timeout, Err: err}
}

func newParseError(err error) *Error {
	return &Error{Kind: KindParse, Err: err}
}

// AsError unwraps err into a classified *Error if one is present anywhere in
// its chain.
func AsError(err error) (*Error, bool) {
	var cerr *Error
	ok := errors.As(err, &cerr)
	return cerr, ok
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	cerr, ok := AsError(err)
	return ok && cerr.Kind == kind
}

func IsAuthentication(err error) bool { return IsKind(err, KindAuthentication) }
func IsAPIRequest(err error) bool     { return IsKind(err, KindAPIRequest) }
func IsNetwork(err error) bool        { return IsKind(err, KindNetwork) }
func IsTimeout(err error) bool        { return IsKind(err, KindTimeout) }
func IsParse(err error) bool          { return IsKind(err, KindParse) }

// classifyTransportError maps a raw transport failure onto the error
// taxonomy. An already-classified error passes through unchanged, never
// re-wrapped.
func (c *Client) classifyTransportError(err error) error {
	if cerr, ok := AsError(err); ok {
		return cerr
	}
	if isTimeoutErr(err) {
		return newTimeoutError(c.timeout, err)
	}
	return newNetworkError(err)
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
