package submission

import (
	"context"
	"errors"

	"github.com/abhisek/sqlpractice/internal/retry"
)

// RetrySink retries transient sink failures: transport errors, 429 and 5xx.
// Other non-success responses are returned at once.
type RetrySink struct {
	inner  Sink
	policy retry.Policy
}

// WithRetry wraps sink with retry logic.
func WithRetry(sink Sink, policy retry.Policy) Sink {
	return &RetrySink{inner: sink, policy: policy}
}

func (r *RetrySink) Put(ctx context.Context, name string, data []byte, message string) (int, error) {
	var (
		status int
		err    error
	)
	attempts := r.policy.Attempts()

	for attempt := range attempts {
		status, err = r.inner.Put(ctx, name, data, message)
		if err == nil || !transient(err) || attempt == attempts-1 {
			return status, err
		}
		if serr := retry.Sleep(ctx, r.policy.Backoff(attempt)); serr != nil {
			return status, serr
		}
	}
	return status, err
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *SinkError
	if errors.As(err, &se) {
		return se.Transient()
	}
	return true
}
