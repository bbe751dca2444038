package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	_, err := r.insertEvent(ctx, tableHintEvents,
		[]string{"session_id", "exercise_index", "source", "hint_text"},
		[]any{data.SessionID, data.ExerciseIndex, data.Source, data.HintText},
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSubmissionEvent(ctx context.Context, data SubmissionEventData) error {
	_, err := r.insertEvent(ctx, tableSubmissionEvents,
		[]string{"session_id", "learner_name", "path", "status_code", "success", "error_message"},
		[]any{data.SessionID, data.LearnerName, data.Path, data.StatusCode, boolInt(data.Success), data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}
