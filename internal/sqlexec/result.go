package sqlexec

// Kind classifies the outcome of a single Execute call.
type Kind int

const (
	KindTabular    Kind = iota + 1 // statement returned a row set (possibly empty)
	KindNonTabular                 // DDL/DML, acknowledged with a message
	KindFailure                    // rejected input or engine error
)

// String returns the lowercase name used in event logs and JSON payloads.
func (k Kind) String() string {
	switch k {
	case KindTabular:
		return "tabular"
	case KindNonTabular:
		return "non_tabular"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

const (
	// EmptyQueryMessage is reported when the submitted text is blank.
	EmptyQueryMessage = "Please enter a SQL query."

	// AckMessage acknowledges a non-tabular statement.
	AckMessage = "OK"
)

// Result is the transient outcome of executing one learner statement.
// Exactly one of the Tabular, NonTabular or Failure shapes is populated,
// selected by Kind.
type Result struct {
	Kind Kind

	// Tabular.
	Columns []string
	Rows    [][]any

	// NonTabular.
	Message      string
	RowsAffected int64

	// Failure. Rejected is set when the input never reached the engine.
	ErrorText string
	Rejected  bool
}

// Failed reports whether the statement was rejected or errored.
func (r Result) Failed() bool {
	return r.Kind == KindFailure
}

// HasRows reports whether a tabular result carries at least one row.
func (r Result) HasRows() bool {
	return r.Kind == KindTabular && len(r.Rows) > 0
}

func rejected(text string) Result {
	return Result{Kind: KindFailure, ErrorText: text, Rejected: true}
}

func failure(err error) Result {
	return Result{Kind: KindFailure, ErrorText: err.Error()}
}
