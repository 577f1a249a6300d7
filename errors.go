package redact

import "errors"

// Session lifecycle errors.
var (
	// ErrSessionClosed indicates a processing call on a session after
	// Close.
	ErrSessionClosed = errors.New("session is closed")

	// ErrNilTrackFile indicates a session constructed from a nil parsed
	// track file.
	ErrNilTrackFile = errors.New("track file cannot be nil")
)
