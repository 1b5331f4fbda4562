// Package model defines the domain types and value objects for the
// labctl CLI.
//
// This package contains pure data structures with no external dependencies:
// the Profile type with its alias table and derived container/image names,
// and the exit-code taxonomy (ExitCode) with a custom error type (CLIError)
// that carries exit codes for proper OS process exit handling.
package model
