package sqlexec

import (
	"regexp"
	"strings"
)

// tabularPrefix matches statements expected to produce a row set. This is a
// keyword test on the leading text, not a parse: a PRAGMA is always tabular
// even when it yields no rows.
var tabularPrefix = regexp.MustCompile(`(?i)^\s*(WITH|SELECT|PRAGMA)\b`)

// IsTabular reports whether sql starts with WITH, SELECT or PRAGMA.
func IsTabular(sql string) bool {
	return tabularPrefix.MatchString(strings.TrimSpace(sql))
}

// IsBlank reports whether sql is empty after trimming whitespace.
func IsBlank(sql string) bool {
	return strings.TrimSpace(sql) == ""
}

// Classify returns the kind of result sql is expected to produce if it runs
// successfully. Blank input classifies as KindFailure.
func Classify(sql string) Kind {
	switch {
	case IsBlank(sql):
		return KindFailure
	case IsTabular(sql):
		return KindTabular
	default:
		return KindNonTabular
	}
}
