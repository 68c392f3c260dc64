package snapshot

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dpalmer/critic/internal/redact"
)

// Source provides the file listing and contents a snapshot is built from.
// *gitctx.Inspector satisfies it.
type Source interface {
	ListFiles(ctx context.Context) []string
	ReadFile(ctx context.Context, path string) string
}

// skipDirs are path segments whose files never appear in a snapshot.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"venv":         {},
	"__pycache__":  {},
	".mypy_cache":  {},
}

// skipExts are extensions that are binary or useless as review context.
var skipExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {},
	".ico": {}, ".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {},
	".sqlite": {}, ".woff": {}, ".woff2": {}, ".exe": {},
}

// Builder assembles a truncated textual snapshot of the repository.
type Builder struct {
	Source Source
	// RedactSecrets enables secret scanning of file contents.
	RedactSecrets bool
	// RedactPaths are glob patterns whose files contribute a redaction
	// marker instead of their content.
	RedactPaths []string
}

// Build concatenates tracked file contents, each prefixed with a "# File:"
// header, until adding the next chunk would exceed maxChars. The overflowing
// chunk is cut so the result is exactly maxChars long, and enumeration stops
// there. Binary and unreadable files are skipped. Output is deterministic for
// a fixed repository state and budget.
func (b *Builder) Build(ctx context.Context, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	var sb strings.Builder
	for _, path := range b.Source.ListFiles(ctx) {
		if skip(path) {
			continue
		}
		content := b.Source.ReadFile(ctx, path)
		if content == "" {
			continue
		}
		if b.RedactSecrets {
			content = redact.Content(content, path, b.RedactPaths)
		}

		chunk := "\n\n# File: " + path + "\n\n" + content
		remaining := maxChars - sb.Len()
		if len(chunk) >= remaining {
			sb.WriteString(chunk[:remaining])
			break
		}
		sb.WriteString(chunk)
	}
	return sb.String()
}

func skip(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if _, ok := skipDirs[part]; ok {
			return true
		}
	}
	_, ok := skipExts[strings.ToLower(filepath.Ext(path))]
	return ok
}
