// Package logging keeps credentials out of text shown to learners. Sink
// and provider errors can echo request headers or URLs, so anything
// user-visible goes through Mask first.
package logging

import (
	"regexp"
)

var (
	reBearer   = regexp.MustCompile(`(?i)(bearer\s+|token\s+)([A-Za-z0-9._~+/=-]+)`)
	reParam    = regexp.MustCompile(`(?i)(token=|api_key=|apikey=|key=|password=)([^\s&;"]+)`)
	reGitHub   = regexp.MustCompile(`\b(ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{20,}\b|\bgithub_pat_[A-Za-z0-9_]{20,}\b`)
	reProvider = regexp.MustCompile(`\bsk-(ant-)?[A-Za-z0-9_-]{16,}\b`)
	reURLCreds = regexp.MustCompile(`(://)([^:/@\s]+):([^@\s]+)(@)`)
)

// Mask replaces credential-looking values in s with "***".
func Mask(s string) string {
	out := s
	out = reBearer.ReplaceAllString(out, "$1***")
	out = reParam.ReplaceAllString(out, "$1***")
	out = reGitHub.ReplaceAllString(out, "***")
	out = reProvider.ReplaceAllString(out, "***")
	out = reURLCreds.ReplaceAllString(out, "$1*:*$4")
	return out
}
