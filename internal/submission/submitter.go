package submission

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/logging"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/store"
)

// Upload is the outcome of storing one artifact.
type Upload struct {
	Path       string
	StatusCode int
	Err        error
}

// OK reports whether the artifact was stored.
func (u Upload) OK() bool {
	return u.Err == nil && succeeded(u.StatusCode)
}

// Receipt lists what happened to each artifact of a submission.
type Receipt struct {
	Name    string
	Uploads []Upload
}

// OK reports whether every artifact was stored.
func (r *Receipt) OK() bool {
	for _, u := range r.Uploads {
		if !u.OK() {
			return false
		}
	}
	return len(r.Uploads) > 0
}

// Submitter packages progress and hands it to a Sink.
type Submitter struct {
	sink    Sink
	catalog []exercises.Exercise
	events  store.EventRepo
}

// NewSubmitter creates a Submitter. events may be nil.
func NewSubmitter(sink Sink, catalog []exercises.Exercise, events store.EventRepo) *Submitter {
	return &Submitter{sink: sink, catalog: catalog, events: events}
}

// Submit uploads both artifacts for state under the learner's name. Every
// artifact is attempted even when an earlier one fails; state is only
// read, so a failed submission can simply be retried.
func (s *Submitter) Submit(ctx context.Context, sessionID, name string, state *session.SessionState) (*Receipt, error) {
	bundle, err := Package(name, s.catalog, state)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{Name: bundle.SafeName}
	var errs []error
	for _, a := range bundle.Artifacts {
		status, err := s.sink.Put(ctx, a.Path, a.Data, a.Message)
		receipt.Uploads = append(receipt.Uploads, Upload{Path: a.Path, StatusCode: status, Err: err})
		if err != nil {
			errs = append(errs, err)
		}
		s.logUpload(ctx, sessionID, bundle.Name, a.Path, status, err)
	}

	if len(errs) > 0 {
		return receipt, fmt.Errorf("submit progress: %w", errors.Join(errs...))
	}
	return receipt, nil
}

func (s *Submitter) logUpload(ctx context.Context, sessionID, name, path string, status int, err error) {
	if s.events == nil {
		return
	}
	data := store.SubmissionEventData{
		SessionID:   sessionID,
		LearnerName: name,
		Path:        path,
		StatusCode:  status,
		Success:     err == nil && succeeded(status),
	}
	if err != nil {
		data.ErrorMessage = logging.Mask(err.Error())
	}
	if logErr := s.events.AppendSubmissionEvent(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log submission event: %v\n", logErr)
	}
}
