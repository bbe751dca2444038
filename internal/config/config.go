// Package config reads process configuration from SQLPRACTICE_*
// environment variables. Command-line flags override individual fields.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/sqlpractice/internal/llm"
	"github.com/abhisek/sqlpractice/internal/store"
	"github.com/abhisek/sqlpractice/internal/submission"
)

// Sink kinds.
const (
	SinkGitHub = "github"
	SinkFS     = "fs"
)

// Config is the whole process configuration.
type Config struct {
	// DBPath is the event-log database. Empty means store.DefaultDBPath().
	DBPath string

	Sink   string // github or fs
	GitHub submission.GitHubConfig
	FSDir  string

	HTTPAddr    string
	CORSOrigins []string

	// Snapshots turns progress snapshots on for the terminal shell.
	Snapshots bool

	LLM llm.Config
}

// FromEnv builds a Config from the environment.
func FromEnv() Config {
	token := os.Getenv("SQLPRACTICE_GITHUB_TOKEN")
	defSink := SinkFS
	if token != "" {
		defSink = SinkGitHub
	}

	return Config{
		DBPath: os.Getenv("SQLPRACTICE_DB"),
		Sink:   envOr("SQLPRACTICE_SINK", defSink),
		GitHub: submission.GitHubConfig{
			APIBase: envOr("SQLPRACTICE_GITHUB_API", submission.DefaultGitHubAPI),
			Repo:    os.Getenv("SQLPRACTICE_GITHUB_REPO"),
			Branch:  envOr("SQLPRACTICE_GITHUB_BRANCH", "main"),
			Dir:     envOr("SQLPRACTICE_GITHUB_DIR", "submissions"),
			Token:   token,
		},
		FSDir:       envOr("SQLPRACTICE_FS_DIR", "./submissions"),
		HTTPAddr:    envOr("SQLPRACTICE_HTTP_ADDR", ":8080"),
		CORSOrigins: csvOr("SQLPRACTICE_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		Snapshots:   envBool("SQLPRACTICE_SNAPSHOTS", true),
		LLM:         llm.ConfigFromEnv(),
	}
}

// ResolvedDBPath returns DBPath, or the default location when unset, and
// makes sure its directory exists.
func (c Config) ResolvedDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// Validate checks that the selected sink and LLM provider are usable.
func (c Config) Validate() error {
	if err := c.ValidateSink(); err != nil {
		return err
	}
	return c.LLM.Validate()
}

// ValidateSink checks only the submission sink settings.
func (c Config) ValidateSink() error {
	switch c.Sink {
	case SinkGitHub:
		if c.GitHub.Token == "" {
			return fmt.Errorf("SQLPRACTICE_GITHUB_TOKEN is required for the github sink")
		}
		if !strings.Contains(c.GitHub.Repo, "/") {
			return fmt.Errorf("SQLPRACTICE_GITHUB_REPO must be owner/name, got %q", c.GitHub.Repo)
		}
	case SinkFS:
		if c.FSDir == "" {
			return fmt.Errorf("SQLPRACTICE_FS_DIR must not be empty for the fs sink")
		}
	default:
		return fmt.Errorf("unknown sink %q (want %s or %s)", c.Sink, SinkGitHub, SinkFS)
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
