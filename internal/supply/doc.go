// Package supply implements supply-integrity validation for NFT
// collections: it reconciles the set of image files against the set of
// metadata files, detects duplicate and colliding filenames, finds ID
// gaps against the expected supply range, and verifies metadata
// parseability and consistency.
//
// The package works on a read-only snapshot: each run performs one
// directory listing per scanned directory and one open-and-parse per
// metadata file touched by a check. Nothing is mutated or persisted.
//
// Validation distinguishes three failure kinds:
//
//   - Precondition failures (no images at all, no metadata at all)
//     abort the run immediately with ExitPrecondition.
//   - Per-token findings (invalid JSON, image-field mismatches,
//     duplicate traits) are collected and never abort the run.
//   - Critical aggregate conditions (any missing/gap/invalid-JSON
//     finding after a full run) fail the run with ExitValidationFailed,
//     but only after the full report has been produced.
package supply
