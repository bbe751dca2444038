package config

import (
	"github.com/abhisek/sqlpractice/internal/retry"
	"github.com/abhisek/sqlpractice/internal/submission"
)

// NewSink builds the configured submission sink, wrapped with retries.
func (c Config) NewSink() (submission.Sink, error) {
	if err := c.ValidateSink(); err != nil {
		return nil, err
	}
	var sink submission.Sink
	switch c.Sink {
	case SinkGitHub:
		gh, err := submission.NewGitHubSink(c.GitHub, nil)
		if err != nil {
			return nil, err
		}
		sink = gh
	default:
		sink = submission.NewFSSink(c.FSDir)
	}
	return submission.WithRetry(sink, retry.Default()), nil
}
