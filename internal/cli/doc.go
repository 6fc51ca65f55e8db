// Package cli wires together the Cobra command tree for the coderev binary.
//
// It defines the root command and all subcommands (review, config, models,
// serve, version), binds flags, reads configuration, invokes the review
// pipeline, and returns deterministic exit codes for scripting.
package cli
