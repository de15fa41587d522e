package backend

import (
	"errors"
	"strings"
)

// ErrTimeout signals that the backend did not answer within the call deadline.
var ErrTimeout = errors.New("llama server timeout")

// IsTimeout reports whether err indicates a backend deadline was exceeded.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	msg := "llama server http error: " + e.Status
	if b := strings.TrimSpace(e.Body); b != "" {
		msg += ": " + b
	}
	return msg
}
