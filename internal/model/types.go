package model

import (
	"fmt"
	"sort"
)

// TokenID is the integer identifier of a single collection item, derived
// from its filename (e.g. "17.png" and "17.json" both refer to TokenID 17).
//
// IDs are non-negative base-10 integers. Leading zeros are not normalized
// by the filename pattern, so "017.png" and "17.png" parse to the same
// TokenID — see supply.ScanResult.Collisions for how that is surfaced.
type TokenID int

// TokenFinding records a per-token validation problem together with a
// human-readable detail string (a JSON parse error, a bad image field
// value, a read failure, ...).
//
// Findings never abort a validation run; they are collected and reported
// at the end.
type TokenFinding struct {
	// ID is the token the finding applies to.
	ID TokenID `json:"id"`

	// Detail describes the problem. For image-field mismatches this is
	// the offending field value; for parse failures it is the error text.
	Detail string `json:"detail"`
}

// String returns a compact "id: detail" form used in text reports.
func (f TokenFinding) String() string {
	return fmt.Sprintf("%d: %s", int(f.ID), f.Detail)
}

// TraitGroup records a set of tokens that share an identical attribute
// combination. A group with two or more tokens is a duplicate-traits
// finding: every item in a collection is expected to have a unique
// trait set.
type TraitGroup struct {
	// Key is the canonical serialization of the shared attribute list
	// ("Background=Gold|Body=Blue"). Order-preserving, so two tokens with
	// the same traits in a different order form different groups.
	Key string `json:"key"`

	// IDs lists the tokens carrying this trait combination, ascending.
	IDs []TokenID `json:"ids"`
}

// SortTokenIDs sorts a TokenID slice ascending in place and returns it.
// All reported ID lists (missing, gaps, duplicates) are sorted so that
// report output is deterministic and diffable.
func SortTokenIDs(ids []TokenID) []TokenID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ExitCode defines the CLI exit code contract. These codes allow scripts
// and CI systems to programmatically determine the outcome of a run.
type ExitCode int

const (
	// ExitSuccess indicates the command completed and validation passed.
	ExitSuccess ExitCode = 0

	// ExitPrecondition indicates the run could not meaningfully start:
	// no image files or no metadata files were found, a directory was
	// unreadable, or flags/manifest were invalid. No checks beyond the
	// failing precondition are attempted. Generic CLI errors also use
	// this code.
	ExitPrecondition ExitCode = 1

	// ExitValidationFailed indicates the run completed but found at
	// least one critical condition: missing images, missing metadata,
	// ID gaps in the expected range, invalid JSON, or (when enabled)
	// duplicate trait combinations. The full report is always printed
	// before exiting with this code.
	ExitValidationFailed ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
