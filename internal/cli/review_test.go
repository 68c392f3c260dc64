package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dpalmer/critic/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverrides_TimeoutZeroIsCarried(t *testing.T) {
	require.NoError(t, reviewCmd.Flags().Set("timeout", "0"))
	t.Cleanup(func() {
		flagTimeout = 0
		reviewCmd.Flags().Lookup("timeout").Changed = false
	})

	m := buildOverrides(reviewCmd)
	assert.Equal(t, "0", m["gitTimeout"], "explicit 0 must reach the config as unbounded")
}

func TestBuildOverrides_UnsetFlagsOmitted(t *testing.T) {
	m := buildOverrides(reviewCmd)
	_, ok := m["gitTimeout"]
	assert.False(t, ok)
	_, ok = m["maxContextChars"]
	assert.False(t, ok)
}

func TestRunReview_MissingCredentialExitsZero(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = ""
	cfg.MaxContextChars = 0

	runReview(context.Background(), cfg, "HEAD")

	assert.Equal(t, ExitSuccess, exitCode, "a missing credential must not fail the hook")
}

// chdir switches to dir for the duration of the test (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

// initTestRepo builds a one-commit repository for pipeline tests.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	run("add", ".")
	run("-c", "user.email=critic@test", "-c", "user.name=critic", "commit", "-q", "-m", "initial")
	return dir
}

func TestRunReview_EndToEnd(t *testing.T) {
	dir := initTestRepo(t)
	chdir(t, dir)

	var calls atomic.Int64
	var gotUserPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		gotUserPrompt = body.Messages[1].Content

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"All good, ship it."}}],"usage":{"total_tokens":7}}`)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.APIKey = "test-key"
	cfg.BaseURL = server.URL
	cfg.MaxContextChars = 2000

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runReview(context.Background(), cfg, "HEAD")

	w.Close()
	os.Stdout = oldStdout
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load(), "exactly one endpoint call per run")
	assert.Equal(t, ExitSuccess, exitCode)
	assert.Contains(t, string(out), "=== AI CODE REVIEW ===")
	assert.Contains(t, string(out), "All good, ship it.")
	assert.Contains(t, gotUserPrompt, "+package main", "diff must reach the endpoint")
	assert.Contains(t, gotUserPrompt, "# File: main.go", "snapshot must reach the endpoint")
}

func TestRunReview_NoContext(t *testing.T) {
	dir := initTestRepo(t)
	chdir(t, dir)

	var gotUserPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotUserPrompt = body.Messages[1].Content
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer server.Close()

	flagNoContext = true
	t.Cleanup(func() { flagNoContext = false })

	cfg := config.Default()
	cfg.APIKey = "test-key"
	cfg.BaseURL = server.URL

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	runReview(context.Background(), cfg, "HEAD")
	w.Close()
	os.Stdout = oldStdout
	io.Copy(io.Discard, r)

	assert.False(t, strings.Contains(gotUserPrompt, "additional project context"),
		"request must carry no snapshot when context is disabled")
}
