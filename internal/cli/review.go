package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dpalmer/critic/internal/config"
	"github.com/dpalmer/critic/internal/gitctx"
	"github.com/dpalmer/critic/internal/logger"
	"github.com/dpalmer/critic/internal/output"
	"github.com/dpalmer/critic/internal/providers"
	"github.com/dpalmer/critic/internal/redact"
	"github.com/dpalmer/critic/internal/review"
	"github.com/dpalmer/critic/internal/snapshot"
	"github.com/spf13/cobra"
)

var (
	flagCommit          string
	flagNoContext       bool
	flagNoRedact        bool
	flagProvider        string
	flagModel           string
	flagBaseURL         string
	flagMaxContextChars int
	flagTimeout         int
	flagPromptFile      string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the latest commit and print the model's feedback",
	Long: "Review gathers the commit's diff and a truncated repository snapshot, " +
		"sends them to the configured model endpoint, and prints the returned " +
		"review text. It always exits 0 so the invoking hook never blocks a commit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			output.RenderError(os.Stderr, err)
			return nil
		}
		runReview(cmd.Context(), cfg, flagCommit)
		return nil
	},
}

func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagBaseURL != "" {
		m["baseURL"] = flagBaseURL
	}
	if cmd.Flags().Changed("max-context-chars") {
		m["maxContextChars"] = strconv.Itoa(flagMaxContextChars)
	}
	// Zero means "no deadline", so presence matters, not the value.
	if cmd.Flags().Changed("timeout") {
		m["gitTimeout"] = strconv.Itoa(flagTimeout)
	}
	if flagPromptFile != "" {
		m["promptFile"] = flagPromptFile
	}
	if flagNoRedact {
		m["noRedact"] = "true"
	}
	return m
}

// runReview is the whole pipeline: inspect, assemble, build, send, render.
// Every failure is rendered as a terminal line; exitCode stays ExitSuccess.
func runReview(ctx context.Context, cfg config.Config, commitRef string) {
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	inspector := gitctx.New(cfg.GitTimeout, log)

	if !cfg.RedactSecrets {
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}

	diff := inspector.Diff(ctx, commitRef)
	if strings.TrimSpace(diff) == "" {
		log.Warn("empty diff, continuing with degraded context", "commit", commitRef)
	}
	if cfg.RedactSecrets {
		diff = redact.Secrets(diff)
	}

	var snap string
	if !flagNoContext {
		builder := &snapshot.Builder{
			Source:        inspector,
			RedactSecrets: cfg.RedactSecrets,
			RedactPaths:   cfg.RedactPaths,
		}
		snap = builder.Build(ctx, cfg.MaxContextChars)
	}

	template, err := review.LoadTemplate(resolvePromptPath(ctx, inspector, cfg), cfg.PromptFileSet)
	if err != nil {
		output.RenderError(os.Stderr, err)
		return
	}

	req, err := review.Build(diff, snap, template)
	if err != nil {
		output.RenderError(os.Stderr, err)
		return
	}

	client, err := providers.New(cfg)
	if err != nil {
		output.RenderError(os.Stderr, err)
		return
	}

	resp, err := client.Review(ctx, req)
	if err != nil {
		output.RenderError(os.Stderr, err)
		return
	}

	if err := output.Render(os.Stdout, resp.Content); err != nil {
		output.RenderError(os.Stderr, err)
	}
}

// resolvePromptPath anchors a relative prompt path at the repository root, so
// the hook finds the same file regardless of the directory the commit was
// made from.
func resolvePromptPath(ctx context.Context, inspector *gitctx.Inspector, cfg config.Config) string {
	path := cfg.PromptFile
	if filepath.IsAbs(path) {
		return path
	}
	if root := inspector.RepoRoot(ctx); root != "" {
		return filepath.Join(root, path)
	}
	return path
}

func init() {
	reviewCmd.Flags().StringVar(&flagCommit, "commit", "HEAD", "Commit to review (hash or symbolic ref)")
	reviewCmd.Flags().BoolVar(&flagNoContext, "no-context", false, "Skip sending the repository snapshot")
	reviewCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	reviewCmd.Flags().StringVar(&flagProvider, "provider", "", "Model provider (openai, ollama)")
	reviewCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	reviewCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Model endpoint override")
	reviewCmd.Flags().IntVar(&flagMaxContextChars, "max-context-chars", 0, "Snapshot character budget")
	reviewCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-git-call timeout in seconds (0 = unbounded)")
	reviewCmd.Flags().StringVar(&flagPromptFile, "prompt-file", "", "Instruction template path")
}
