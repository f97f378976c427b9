package remote

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the class of a remote-store failure. Codes, not messages,
// drive the retry classification in the sync layer.
type Code string

const (
	// Terminal codes: retrying cannot help, surface immediately.
	CodePermissionDenied Code = "permission-denied"
	CodeNotFound         Code = "not-found"
	CodeUnauthenticated  Code = "unauthenticated"
	CodeInvalidArgument  Code = "invalid-argument"
	CodeBlockedByClient  Code = "blocked-by-client"
	CodeOffline          Code = "offline"

	// Transient codes: the operation may succeed on a later attempt.
	CodeUnavailable       Code = "unavailable"
	CodeDeadlineExceeded  Code = "deadline-exceeded"
	CodeResourceExhausted Code = "resource-exhausted"
	CodeAborted           Code = "aborted"
	CodeAlreadyExists     Code = "already-exists"
	CodeInternal          Code = "internal"
	CodeUnknown           Code = "unknown"
)

// Error is a coded remote-store error. Op names the failed operation for
// logs; Err is the underlying cause, if any.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError constructs a coded *Error.
func NewError(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

// CodeOf extracts the [Code] from err, or [CodeUnknown] when err carries no
// code.
func CodeOf(err error) Code {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return CodeUnknown
}

// IsBlockedByClient reports whether err looks like a request rejected by a
// client-side content blocker. These never recover on retry and need a
// distinct remediation path (the user has to whitelist the app), so the
// check also scans the message for the browser-originated marker that
// uncoded transport errors carry.
func IsBlockedByClient(err error) bool {
	if err == nil {
		return false
	}
	if CodeOf(err) == CodeBlockedByClient {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, strings.ToLower("ERR_BLOCKED_BY_CLIENT")) ||
		strings.Contains(msg, "blocked by client")
}

// IsOffline reports whether err is the fail-fast offline condition raised
// before a remote call is attempted.
func IsOffline(err error) bool {
	return CodeOf(err) == CodeOffline
}

// IsRetryable classifies err for the retry executor. Terminal codes and
// content-blocker rejections are never retryable; transient transport and
// service codes are. Uncoded errors default to retryable, matching the
// treatment of generic internal/unknown service failures.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsBlockedByClient(err) {
		return false
	}

	switch CodeOf(err) {
	case CodePermissionDenied, CodeNotFound, CodeUnauthenticated,
		CodeInvalidArgument, CodeOffline:
		return false
	case CodeUnavailable, CodeDeadlineExceeded, CodeResourceExhausted,
		CodeAborted, CodeAlreadyExists, CodeInternal, CodeUnknown:
		return true
	default:
		return true
	}
}
