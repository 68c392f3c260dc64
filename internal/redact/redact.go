package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for secret shapes that must not leave
// the machine inside a review request.
var secretPatterns = []*regexp.Regexp{
	// Assignments of keys/secrets/tokens/passwords to long opaque values
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|secret|token|password|passwd|credential)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{16,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// OpenAI API keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// PathMatches reports whether path matches any of the glob patterns. Patterns
// with a "**/" prefix also match against the bare filename.
func PathMatches(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean == pattern {
			continue
		}
		if ok, err := filepath.Match(clean, filepath.Base(path)); err == nil && ok {
			return true
		}
	}
	return false
}

// Content scans content for secrets, or replaces it wholesale when the path
// matches a redaction pattern (e.g. **/.env).
func Content(content, path string, redactPaths []string) string {
	if PathMatches(path, redactPaths) {
		return placeholder + " (file content withheld by path policy)\n"
	}
	return Secrets(content)
}
