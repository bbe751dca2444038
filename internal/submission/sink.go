package submission

import (
	"context"
	"fmt"
	"net/http"
)

// Sink stores a named blob and reports the status code of the store call.
type Sink interface {
	Put(ctx context.Context, path string, data []byte, message string) (int, error)
}

// SinkError is a non-success response from a sink.
type SinkError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("store %s: HTTP %d: %s", e.Path, e.StatusCode, e.Body)
}

// Transient reports whether the failure is worth retrying.
func (e *SinkError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func succeeded(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}
