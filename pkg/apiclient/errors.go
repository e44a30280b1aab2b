package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches a StatusError with code 404.
var ErrNotFound = errors.New("apiclient: not found")

// StatusError is a non-2xx response that carried no structured error body.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("apiclient: unexpected status %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("apiclient: unexpected status %d: %s", e.Code, body)
}

// StatusCode returns the response status.
func (e *StatusError) StatusCode() int { return e.Code }

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}
