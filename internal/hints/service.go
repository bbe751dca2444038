// Package hints answers "give me a hint" for the current exercise. The
// catalog hint wins; a configured LLM provider fills the gaps; otherwise a
// fixed message is returned. A hint request never fails.
package hints

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/llm"
)

// Source tells where a hint came from.
type Source string

const (
	SourceCatalog Source = "catalog"
	SourceLLM     Source = "llm"
	SourceNone    Source = "none"
)

// Hint is the text shown to the learner.
type Hint struct {
	Text   string
	Source Source
}

// Input is what the service knows about the learner's position.
type Input struct {
	Exercise   exercises.Exercise
	LastAnswer string
	LastError  string
}

// Service produces hints.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a hint service. provider may be nil, in which case only
// catalog hints are served.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Hint returns the best available hint for in.Exercise.
func (s *Service) Hint(ctx context.Context, in Input) Hint {
	if in.Exercise.HasHint() {
		return Hint{Text: in.Exercise.Hint, Source: SourceCatalog}
	}

	if s != nil && s.provider != nil {
		text, err := s.generate(ctx, in)
		if err == nil {
			return Hint{Text: text, Source: SourceLLM}
		}
		fmt.Fprintf(os.Stderr, "warning: hint generation failed: %v\n", err)
	}

	return Hint{Text: exercises.NoHintMessage, Source: SourceNone}
}

type hintOutput struct {
	Hint string `json:"hint"`
}

func (s *Service) generate(ctx context.Context, in Input) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)

	req := llm.UserPrompt(hintSystemPrompt, buildHintUserMessage(in), HintSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("hint generation: %w", err)
	}

	var out hintOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse hint response: %w", err)
	}
	text := strings.TrimSpace(out.Hint)
	if text == "" {
		return "", fmt.Errorf("parse hint response: empty hint")
	}
	return text, nil
}
