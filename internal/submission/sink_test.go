package submission

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/retry"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/store"
)

// fakeContents imitates the GitHub contents API for one repository.
type fakeContents struct {
	mu      sync.Mutex
	files   map[string]string // path -> decoded content
	shas    map[string]string
	puts    int
	failPut int // respond 502 to this many PUTs first
	status  int // forced PUT status when non-zero
}

func newFakeContents() *fakeContents {
	return &fakeContents{files: map[string]string{}, shas: map[string]string{}}
}

func (f *fakeContents) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		p := strings.TrimPrefix(r.URL.Path, "/repos/instructor/classroom/contents/")
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			sha, ok := f.shas[p]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, `{"path":"`+p+`","sha":"`+sha+`"}`)
		case http.MethodPut:
			f.puts++
			if f.failPut > 0 {
				f.failPut--
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			if f.status != 0 {
				w.WriteHeader(f.status)
				_, _ = io.WriteString(w, `{"message":"forced"}`)
				return
			}
			body, _ := io.ReadAll(r.Body)
			existing, exists := f.shas[p]
			if exists && gjson.GetBytes(body, "sha").String() != existing {
				w.WriteHeader(http.StatusConflict)
				return
			}
			content, err := base64.StdEncoding.DecodeString(gjson.GetBytes(body, "content").String())
			require.NoError(t, err)
			f.files[p] = string(content)
			f.shas[p] = "sha-" + p + "-" + gjson.GetBytes(body, "message").String()
			if exists {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusCreated)
			}
			_, _ = io.WriteString(w, `{"content":{"path":"`+p+`"}}`)
		}
	}
}

func newTestGitHubSink(t *testing.T, fake *fakeContents) *GitHubSink {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	sink, err := NewGitHubSink(GitHubConfig{
		APIBase: srv.URL,
		Repo:    "instructor/classroom",
		Token:   "test-token",
	}, srv.Client())
	require.NoError(t, err)
	return sink
}

func TestGitHubSink_CreateThenUpdate(t *testing.T) {
	fake := newFakeContents()
	sink := newTestGitHubSink(t, fake)
	ctx := context.Background()

	status, err := sink.Put(ctx, "Ada_answers.csv", []byte("v1"), "Answers Ada")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "v1", fake.files["submissions/Ada_answers.csv"])

	status, err = sink.Put(ctx, "Ada_answers.csv", []byte("v2"), "Answers Ada")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "v2", fake.files["submissions/Ada_answers.csv"])
}

func TestGitHubSink_FailureCarriesStatus(t *testing.T) {
	fake := newFakeContents()
	fake.status = http.StatusUnprocessableEntity
	sink := newTestGitHubSink(t, fake)

	status, err := sink.Put(context.Background(), "x.png", []byte{1}, "Progress x")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	var se *SinkError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Contains(t, se.Body, "forced")
	assert.False(t, se.Transient())
}

func TestNewGitHubSink_Validation(t *testing.T) {
	_, err := NewGitHubSink(GitHubConfig{Repo: "classroom", Token: "t"}, nil)
	assert.Error(t, err)
	_, err = NewGitHubSink(GitHubConfig{Repo: "instructor/classroom"}, nil)
	assert.Error(t, err)

	sink, err := NewGitHubSink(GitHubConfig{Repo: "instructor/classroom", Token: "t", Dir: "/answers/"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/repos/instructor/classroom/contents/answers/a.csv", sink.contentsURL("a.csv"))
}

func TestPutBody(t *testing.T) {
	body, err := putBody("Progress Ada", []byte("png"), "main", "")
	require.NoError(t, err)
	assert.Equal(t, "Progress Ada", gjson.GetBytes(body, "message").String())
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png")), gjson.GetBytes(body, "content").String())
	assert.Equal(t, "main", gjson.GetBytes(body, "branch").String())
	assert.False(t, gjson.GetBytes(body, "sha").Exists())

	body, err = putBody("m", nil, "main", "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", gjson.GetBytes(body, "sha").String())
}

func TestFSSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := NewFSSink(dir)
	ctx := context.Background()

	status, err := sink.Put(ctx, "a.csv", []byte("one"), "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)

	status, err = sink.Put(ctx, "a.csv", []byte("two"), "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	got, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	_, err = sink.Put(ctx, "../escape.csv", []byte("x"), "")
	assert.Error(t, err)
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestRetrySink_RetriesTransient(t *testing.T) {
	fake := newFakeContents()
	fake.failPut = 2
	sink := WithRetry(newTestGitHubSink(t, fake), fastPolicy())

	status, err := sink.Put(context.Background(), "a.csv", []byte("x"), "m")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 3, fake.puts)
}

func TestRetrySink_GivesUpOnClientError(t *testing.T) {
	fake := newFakeContents()
	fake.status = http.StatusForbidden
	sink := WithRetry(newTestGitHubSink(t, fake), fastPolicy())

	status, err := sink.Put(context.Background(), "a.csv", []byte("x"), "m")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 1, fake.puts)
}

func TestSubmitter_UploadsBothArtifacts(t *testing.T) {
	fake := newFakeContents()
	sink := newTestGitHubSink(t, fake)
	catalog := exercises.All()

	st, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	state := session.NewSessionState(len(catalog))
	state.Statuses[0] = session.StatusSolved
	state.Answers[0] = "SELECT title, year FROM books;"
	before := state.Clone()

	require.NoError(t, st.EventRepo().AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID: "sess-1", Action: store.ActionStart,
	}))

	sub := NewSubmitter(sink, catalog, st.EventRepo())
	receipt, err := sub.Submit(context.Background(), "sess-1", "Ada Lovelace", state)
	require.NoError(t, err)
	assert.True(t, receipt.OK())
	require.Len(t, receipt.Uploads, 2)

	assert.Contains(t, fake.files, "submissions/Ada_Lovelace_progress.png")
	assert.Contains(t, fake.files["submissions/Ada_Lovelace_answers.csv"], "SELECT title, year FROM books;")
	assert.Equal(t, before, state)

	sums, err := st.EventRepo().SessionSummaries(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.True(t, sums[0].Submitted)
}

func TestSubmitter_AttemptsEveryArtifact(t *testing.T) {
	fake := newFakeContents()
	fake.status = http.StatusInternalServerError
	sink := newTestGitHubSink(t, fake)

	sub := NewSubmitter(sink, exercises.All(), nil)
	receipt, err := sub.Submit(context.Background(), "sess-1", "Ada", session.NewSessionState(exercises.Len()))
	require.Error(t, err)
	require.NotNil(t, receipt)
	assert.False(t, receipt.OK())
	assert.Equal(t, 2, fake.puts)
	for _, u := range receipt.Uploads {
		assert.Equal(t, http.StatusInternalServerError, u.StatusCode)
	}
}

func TestSubmitter_MissingName(t *testing.T) {
	fake := newFakeContents()
	sub := NewSubmitter(newTestGitHubSink(t, fake), exercises.All(), nil)

	_, err := sub.Submit(context.Background(), "sess-1", "  ", session.NewSessionState(exercises.Len()))
	require.ErrorIs(t, err, ErrMissingName)
	assert.Equal(t, 0, fake.puts)
}

func TestSubmitter_NameCannotEscapeDir(t *testing.T) {
	fake := newFakeContents()
	sub := NewSubmitter(newTestGitHubSink(t, fake), exercises.All(), nil)

	receipt, err := sub.Submit(context.Background(), "sess-1", "../.github/workflows/x", session.NewSessionState(exercises.Len()))
	require.NoError(t, err)
	require.Len(t, receipt.Uploads, 2)
	for p := range fake.files {
		assert.True(t, strings.HasPrefix(p, "submissions/"), "uploaded outside submissions: %s", p)
		assert.NotContains(t, strings.TrimPrefix(p, "submissions/"), "/")
	}
	for _, u := range receipt.Uploads {
		assert.NotContains(t, u.Path, "/")
	}
}

func TestGitHubSink_RejectsNestedNames(t *testing.T) {
	fake := newFakeContents()
	sink := newTestGitHubSink(t, fake)

	for _, name := range []string{"../x.csv", "a/b.csv", ".hidden"} {
		status, err := sink.Put(context.Background(), name, []byte("x"), "m")
		require.Error(t, err, name)
		assert.Equal(t, http.StatusBadRequest, status)
	}
	assert.Equal(t, 0, fake.puts)
}
