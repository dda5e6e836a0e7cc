package api

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is an HTTP-level failure from the remote API. Transport
// failures (no response at all) are returned as plain wrapped errors
// and carry no status.
type RequestError struct {
	Op      string // e.g. "create account"
	Status  int
	Message string // server-supplied, may be empty
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// IsAuth reports whether err is a 401. Callers treat this globally:
// clear the session and route to login, pre-empting per-call display.
func IsAuth(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusUnauthorized
}

// IsValidation reports a 4xx (other than 401) whose server message is
// safe to show verbatim.
func IsValidation(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status >= 400 && re.Status < 500 &&
		re.Status != http.StatusUnauthorized
}

// IsServer reports a 5xx; callers show a generic fallback.
func IsServer(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status >= 500
}

// ErrorMessage picks the user-facing text for err: the server message
// for validation failures when present, otherwise the fallback.
func ErrorMessage(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" && IsValidation(err) {
		return re.Message
	}
	return fallback
}
