package hints

import (
	"fmt"
	"strings"
)

const hintSystemPrompt = `You are a patient SQL tutor. A learner is working through short exercises against a small SQLite database and has asked for a hint.`

const datasetDescription = `authors(id, name, country, birth_year)
books(id, title, author_id -> authors.id, year, genre, rating, pages)
directors(id, name, country, birth_year)
movies(id, title, director_id -> directors.id, year, genre, rating, duration_minutes)`

func buildHintUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tables:\n%s\n\n", datasetDescription)
	fmt.Fprintf(&b, "Exercise %d: %s\n", in.Exercise.Number(), in.Exercise.Prompt)

	if in.Exercise.HasSolution() {
		fmt.Fprintf(&b, "\nReference solution (never show it to the learner):\n%s\n", in.Exercise.Solution)
	}
	if in.LastAnswer != "" {
		fmt.Fprintf(&b, "\nLearner's last query:\n%s\n", in.LastAnswer)
	}
	if in.LastError != "" {
		fmt.Fprintf(&b, "\nIt failed with:\n%s\n", in.LastError)
	}

	b.WriteString(`
Instructions:
1. Give one hint of at most two sentences.
2. Name the clause, join or function to reach for. Do not write the complete query.
3. If the learner's last query failed, point at the mistake first.
4. Use plain text. No markdown.`)

	return b.String()
}
