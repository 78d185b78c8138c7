package studysession

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired sessions.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrSessionNotOwned is returned when a session belongs to another user.
	ErrSessionNotOwned = errors.New("study session is owned by another user")

	// ErrWrongMode is returned when an input does not fit the session's mode,
	// e.g. a quiz answer sent to a flashcard session.
	ErrWrongMode = errors.New("operation does not match the session's study mode")

	// ErrInvalidMode is returned for an unknown study mode name.
	ErrInvalidMode = errors.New("invalid study mode")
)
