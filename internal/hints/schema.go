package hints

import "github.com/abhisek/sqlpractice/internal/llm"

// HintSchema defines the JSON schema for a generated hint.
var HintSchema = &llm.Schema{
	Name:        "sql-hint",
	Description: "A short nudge toward the query that answers a SQL exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One or two sentences naming the clause or technique to use, without the full query",
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}
