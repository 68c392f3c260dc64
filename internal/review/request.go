package review

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dpalmer/critic/internal/providers"
)

// ErrMissingTemplate indicates the instruction template resolved to nothing.
var ErrMissingTemplate = errors.New("instruction template is missing")

// defaultTemplate is used when no prompt file is present. Kept lightweight
// for token efficiency; drop a prompt.md next to the repo root to customize.
const defaultTemplate = `You are a senior code reviewer. Provide constructive, actionable feedback ` +
	`focused on readability, efficiency, security, testing, and maintainability. ` +
	`Reference file paths and line numbers from the diff. Respond with a brief summary ` +
	`followed by bullet-pointed issues and concrete suggestions. Praise positives too.`

// LoadTemplate resolves the instruction template from path. When the default
// path is absent the built-in template is returned; an explicitly configured
// path that cannot be read is a configuration error.
func LoadTemplate(path string, explicit bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultTemplate, nil
		}
		return "", fmt.Errorf("reading prompt file %s: %w", path, err)
	}
	tmpl := strings.TrimSpace(string(data))
	if tmpl == "" {
		return "", ErrMissingTemplate
	}
	return tmpl, nil
}

// Build assembles the provider request from the diff, the optional snapshot,
// and the instruction template. Pure assembly: no file or network I/O. The
// snapshot section is omitted entirely when snapshot is empty.
func Build(diff, snapshot, template string) (providers.ReviewRequest, error) {
	if strings.TrimSpace(template) == "" {
		return providers.ReviewRequest{}, ErrMissingTemplate
	}

	var b strings.Builder
	b.WriteString("Here is the diff of the latest commit:\n")
	b.WriteString("```diff\n")
	b.WriteString(diff)
	b.WriteString("\n```\n")

	if snapshot != "" {
		b.WriteString("\nHere is additional project context (truncated if necessary):\n")
		b.WriteString("```\n")
		b.WriteString(snapshot)
		b.WriteString("\n```\n")
	}

	return providers.ReviewRequest{
		SystemPrompt: template,
		UserPrompt:   b.String(),
	}, nil
}
