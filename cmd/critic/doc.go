// Critic reviews git commits with an LLM from a post-commit hook.
//
// After each commit it gathers the diff and a truncated repository snapshot,
// sends them to an OpenAI-compatible endpoint, and prints the returned review
// text. It never blocks a commit: the review command always exits 0 and
// reports failures to the terminal instead.
//
// Usage:
//
//	critic review                    # review HEAD (normally run by the hook)
//	critic review --commit <sha>     # review a specific commit
//	critic review --no-context       # skip the repository snapshot
//	critic hook install              # add critic to .git/hooks/post-commit
//	critic hook uninstall            # remove it again
package main
