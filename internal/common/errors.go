// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Ingest errors.
	ErrEmptyUpload     = errors.New("empty upload")
	ErrNoDelimiter     = errors.New("unable to detect delimiter")
	ErrMalformedRecord = errors.New("malformed record")

	// Artifact errors.
	ErrArtifactMissing = errors.New("artifact file missing")
	ErrArtifactInvalid = errors.New("artifact contents invalid")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DecodeError indicates the uploaded bytes could not be decoded in any of the
// attempted text encodings, or could not be parsed as delimited text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode upload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError wraps err as a DecodeError.
func NewDecodeError(err error) error {
	return &DecodeError{Err: err}
}

// MissingColumnsError reports which required feature columns are absent after
// column resolution. The request carrying the upload must be aborted.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.Columns, ", "))
}

// EmptyColumnError indicates a required column had no parseable numeric values,
// so its batch median is undefined and the batch is rejected.
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("column %q has no numeric values to compute a median from", e.Column)
}

// ScoringError wraps failures inside the scaler or classifier. At load time it
// is fatal to startup; at request time the caller only sees a generic message.
type ScoringError struct {
	Err   error
	Stage string
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed at %s: %v", e.Stage, e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// NewScoringError creates a ScoringError for the given stage.
func NewScoringError(stage string, err error) error {
	return &ScoringError{Stage: stage, Err: err}
}

// IsClientError reports whether err should be surfaced to the caller with its
// message intact (a bad upload) rather than hidden behind a generic failure.
func IsClientError(err error) bool {
	var decodeErr *DecodeError
	var missingErr *MissingColumnsError
	var emptyErr *EmptyColumnError
	return errors.As(err, &decodeErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &emptyErr)
}
