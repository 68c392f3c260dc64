// Package cli wires together the Cobra command tree for the critic binary.
//
// It defines the root command and its subcommands (review, hook, version),
// binds flags, builds the configuration value object, and drives the review
// pipeline. The review command converts every internal failure into a
// terminal message and always exits 0 so the invoking hook never blocks a
// commit.
package cli
