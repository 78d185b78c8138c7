package gemini

import "errors"

// ErrEmptyBatch is returned when GenerateExamples is called without records.
var ErrEmptyBatch = errors.New("no vocabulary records to generate examples for")
