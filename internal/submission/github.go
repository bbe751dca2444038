package submission

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultGitHubAPI is the public GitHub REST endpoint.
const DefaultGitHubAPI = "https://api.github.com"

// GitHubConfig configures a GitHubSink.
type GitHubConfig struct {
	APIBase string // defaults to DefaultGitHubAPI
	Repo    string // owner/name
	Branch  string // defaults to main
	Dir     string // directory inside the repo, defaults to submissions
	Token   string
}

// GitHubSink stores files through the GitHub contents API, creating or
// updating them in place.
type GitHubSink struct {
	client  *http.Client
	apiBase string
	repo    string
	branch  string
	dir     string
	token   string
}

// NewGitHubSink creates a GitHubSink. client may be nil.
func NewGitHubSink(cfg GitHubConfig, client *http.Client) (*GitHubSink, error) {
	if cfg.Repo == "" || !strings.Contains(cfg.Repo, "/") {
		return nil, fmt.Errorf("github sink: repo must be owner/name, got %q", cfg.Repo)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("github sink: token is required")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultGitHubAPI
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.Dir == "" {
		cfg.Dir = "submissions"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &GitHubSink{
		client:  client,
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		repo:    cfg.Repo,
		branch:  cfg.Branch,
		dir:     strings.Trim(cfg.Dir, "/"),
		token:   cfg.Token,
	}, nil
}

// Put creates or replaces dir/name on the configured branch. An existing
// file's blob sha is looked up first so the update is accepted.
func (g *GitHubSink) Put(ctx context.Context, name string, data []byte, message string) (int, error) {
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return http.StatusBadRequest, &SinkError{Path: name, StatusCode: http.StatusBadRequest, Body: "name must be a plain file name"}
	}
	contentsURL := g.contentsURL(name)

	sha, err := g.existingSHA(ctx, contentsURL)
	if err != nil {
		return 0, err
	}

	body, err := putBody(message, data, g.branch, sha)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, contentsURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	g.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("put %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !succeeded(resp.StatusCode) {
		return resp.StatusCode, &SinkError{Path: name, StatusCode: resp.StatusCode, Body: readSnippet(resp.Body)}
	}
	return resp.StatusCode, nil
}

func (g *GitHubSink) contentsURL(name string) string {
	p := path.Join(g.dir, name)
	return fmt.Sprintf("%s/repos/%s/contents/%s", g.apiBase, g.repo, p)
}

// existingSHA returns the blob sha of the file at contentsURL, or "" when
// it does not exist yet. Only transport failures are errors.
func (g *GitHubSink) existingSHA(ctx context.Context, contentsURL string) (string, error) {
	u := contentsURL + "?ref=" + url.QueryEscape(g.branch)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("look up existing file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read existing file: %w", err)
	}
	return gjson.GetBytes(raw, "sha").String(), nil
}

func (g *GitHubSink) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

// putBody builds {message, content, branch[, sha]}.
func putBody(message string, data []byte, branch, sha string) ([]byte, error) {
	body := []byte(`{}`)
	var err error
	set := func(key, value string) {
		if err == nil {
			body, err = sjson.SetBytes(body, key, value)
		}
	}
	set("message", message)
	set("content", base64.StdEncoding.EncodeToString(data))
	set("branch", branch)
	if sha != "" {
		set("sha", sha)
	}
	if err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}
	return body, nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
