package gitctx

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// Inspector runs git queries as external processes. Every query is bounded by
// Timeout and degrades to an empty result on failure: a broken or missing git
// must never block the commit that invoked the hook.
type Inspector struct {
	// Timeout bounds each git invocation. Zero disables the deadline.
	Timeout time.Duration
	// Dir is the working directory for git commands. Empty means the
	// current directory.
	Dir string

	log *slog.Logger
}

// New returns an Inspector with the given per-call timeout.
func New(timeout time.Duration, log *slog.Logger) *Inspector {
	return &Inspector{Timeout: timeout, log: log}
}

// Diff returns the diff introduced by ref relative to its parent, in unified
// format. Empty string on any failure.
func (in *Inspector) Diff(ctx context.Context, ref string) string {
	out, err := in.git(ctx, "show", "--unified=3", ref)
	if err != nil {
		return ""
	}
	return out
}

// ListFiles returns the tracked files of the repository, lexicographically
// sorted. Nil on any failure.
func (in *Inspector) ListFiles(ctx context.Context) []string {
	out, err := in.git(ctx, "ls-files")
	if err != nil {
		return nil
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	sort.Strings(files)
	return files
}

// ReadFile returns the committed content of path at HEAD. Empty string on
// failure or for binary content.
func (in *Inspector) ReadFile(ctx context.Context, path string) string {
	out, err := in.git(ctx, "show", "HEAD:"+path)
	if err != nil {
		return ""
	}
	if isBinary(out) {
		return ""
	}
	return out
}

// RepoRoot returns the absolute path of the repository root, or empty string
// if not inside a work tree.
func (in *Inspector) RepoRoot(ctx context.Context) string {
	out, err := in.git(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// git runs a single git command under the configured deadline. CommandContext
// kills the process when the deadline expires, so no handle outlives the
// call.
func (in *Inspector) git(ctx context.Context, args ...string) (string, error) {
	if in.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if in.Dir != "" {
		cmd.Dir = in.Dir
	}
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			err = fmt.Errorf("%s: %s", err, bytes.TrimSpace(exitErr.Stderr))
		}
		if in.log != nil {
			in.log.Debug("git command failed", "args", strings.Join(args, " "), "error", err)
		}
		return "", err
	}
	return string(out), nil
}

// isBinary uses the NUL-byte heuristic git itself applies to unified diffs.
func isBinary(content string) bool {
	return strings.ContainsRune(content, '\x00')
}
