package engine

import (
	"errors"
	"net/http"
)

// TimeoutDetail is returned to callers when the backend misses its deadline.
const TimeoutDetail = "추론 시간 초과"

// Error carries the HTTP status a failure maps to. Err keeps the cause for
// logging and errors.Is/As.
type Error struct {
	Code   int
	Detail string
	Err    error
}

// Error returns the caller-facing detail. The cause stays reachable via Unwrap.
func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Err }

// StatusCode implements the HTTP layer's status mapping interface.
func (e *Error) StatusCode() int { return e.Code }

func invalid(detail string) error {
	return &Error{Code: http.StatusUnprocessableEntity, Detail: detail}
}

// IsInvalid reports whether err is a request validation failure.
func IsInvalid(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == http.StatusUnprocessableEntity
}

// IsTimeout reports whether err is a backend deadline failure.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == http.StatusGatewayTimeout
}
