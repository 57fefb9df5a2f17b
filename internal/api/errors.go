package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// Operation identifies which panel operation an error belongs to.
// The panel treats the three operations very differently: fetch failures
// replace the empty-state message, persist and removal failures are logged
// and surfaced as per-row indicators.
type Operation int

const (
	// OpFetch is the initial device list load
	OpFetch Operation = iota
	// OpPersist is a per-row save of edited fields
	OpPersist
	// OpRemoval is a confirmed device removal
	OpRemoval
)

// String returns a human-readable name for the operation
func (op Operation) String() string {
	switch op {
	case OpFetch:
		return "fetch"
	case OpPersist:
		return "persist"
	case OpRemoval:
		return "removal"
	default:
		return fmt.Sprintf("Operation(%d)", op)
	}
}

// ErrorKind represents the category of failure that occurred
type ErrorKind int

const (
	// KindNetwork indicates a network-level error (connection refused, timeout, etc.)
	KindNetwork ErrorKind = iota
	// KindAuth indicates an authentication failure (invalid or expired token)
	KindAuth
	// KindHTTP indicates an HTTP-level error (non-2xx status code)
	KindHTTP
	// KindParse indicates a parsing error (malformed JSON response)
	KindParse
	// KindTimeout indicates a request timeout
	KindTimeout
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindAuth:
		return "Authentication Error"
	case KindHTTP:
		return "HTTP Error"
	case KindParse:
		return "Parse Error"
	case KindTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// PanelError represents a failure of one of the three console operations.
type PanelError struct {
	Op         Operation // Which operation failed
	Kind       ErrorKind // Category of failure
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the client may retry the request
}

// Error implements the error interface
func (e *PanelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s (caused by: %v)", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *PanelError) Unwrap() error {
	return e.Err
}

// newNetworkError classifies a transport error into the taxonomy.
func newNetworkError(op Operation, message string, err error) *PanelError {
	kind := KindNetwork
	retryable := true

	if os.IsTimeout(err) {
		kind = KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		retryable = false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		kind = KindTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		// A refused connection usually means the console is restarting
		retryable = true
	}

	return &PanelError{
		Op:        op,
		Kind:      kind,
		Message:   message,
		Err:       err,
		Retryable: retryable,
	}
}

// newAuthError creates an authentication error (never retryable)
func newAuthError(op Operation, message string) *PanelError {
	return &PanelError{
		Op:        op,
		Kind:      KindAuth,
		Message:   message,
		Retryable: false,
	}
}

// newHTTPError creates an HTTP status error. Server-side errors (5xx) are
// retryable, client-side errors are not.
func newHTTPError(op Operation, statusCode int, message string) *PanelError {
	return &PanelError{
		Op:         op,
		Kind:       KindHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
	}
}

// newParseError creates a response parsing error (never retryable)
func newParseError(op Operation, message string, err error) *PanelError {
	return &PanelError{
		Op:        op,
		Kind:      KindParse,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// IsFetchFailure reports whether err is a failed device list load
func IsFetchFailure(err error) bool {
	return isOp(err, OpFetch)
}

// IsPersistFailure reports whether err is a failed per-row save
func IsPersistFailure(err error) bool {
	return isOp(err, OpPersist)
}

// IsRemovalFailure reports whether err is a failed device removal
func IsRemovalFailure(err error) bool {
	return isOp(err, OpRemoval)
}

// IsAuthError reports whether err is an authentication failure
func IsAuthError(err error) bool {
	var perr *PanelError
	return errors.As(err, &perr) && perr.Kind == KindAuth
}

// IsRetryable reports whether the client may retry the failed request
func IsRetryable(err error) bool {
	var perr *PanelError
	if errors.As(err, &perr) {
		return perr.Retryable
	}
	return false
}

func isOp(err error, op Operation) bool {
	var perr *PanelError
	return errors.As(err, &perr) && perr.Op == op
}
