// Package gitctx extracts diffs, file listings, and file contents from a git
// repository by shelling out to the git binary.
//
// Each call runs under a configurable per-process deadline and returns an
// empty result on non-zero exit, timeout, or a missing git binary. Callers
// never see an error: the hook favors degraded output over blocking a commit.
package gitctx
