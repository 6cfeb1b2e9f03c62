// Package commands provides the command-line interface for the seczip tool.
//
// It implements commands for:
//   - locking a file or directory into a password-protected archive
//   - verifying an existing archive with a known password
//
// The package handles command-line parsing, configuration validation and
// logger construction; the actual work happens in internal/archive.
package commands
