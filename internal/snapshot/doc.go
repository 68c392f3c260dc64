// Package snapshot assembles a character-budgeted snapshot of the
// repository's tracked files for use as review context.
//
// Files are visited in lexicographic order, so output is deterministic for a
// fixed repository state and budget. The file that would overflow the budget
// is truncated so the snapshot length equals the budget exactly, and
// enumeration stops there.
package snapshot
