// Package model defines the domain types and value objects for the
// nft-asset-combining CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (token findings, trait groups, exit codes) are transient
// representations built from a single filesystem scan — there are no
// persistent state files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
