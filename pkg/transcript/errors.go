package transcript

import "errors"

var (
	// ErrInvalidPayload is returned when the transcript payload is malformed
	ErrInvalidPayload = errors.New("invalid transcript payload")

	// ErrStorage is returned when the audio blob cannot be persisted
	ErrStorage = errors.New("audio storage failure")

	// ErrSessionExists is returned when a generated id is already registered
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionNotFound is returned when no session matches an id
	ErrSessionNotFound = errors.New("session not found")
)
