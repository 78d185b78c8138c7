package domain

import "strings"

// StudyMode selects which engine drives a study session.
type StudyMode string

// Supported study modes.
const (
	StudyModeFlashcards     StudyMode = "flashcards"
	StudyModeMultipleChoice StudyMode = "multiple-choice"
	StudyModeMatching       StudyMode = "matching"
)

// ParseStudyMode converts a client-supplied mode name. Matching is
// case-insensitive.
func ParseStudyMode(s string) (StudyMode, error) {
	switch mode := StudyMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case StudyModeFlashcards, StudyModeMultipleChoice, StudyModeMatching:
		return mode, nil
	default:
		return "", NewValidationError("mode", "must be one of flashcards, multiple-choice, matching", ErrInvalidStudyMode)
	}
}
