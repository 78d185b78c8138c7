// Package vocabimport turns line-delimited text into vocabulary records.
//
// Each non-blank line has the form
//
//	term:definition[:example]
//
// Only the first two colons separate fields, so examples may contain colons.
package vocabimport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// ErrImportEmpty is returned when no line of the input produced a record.
var ErrImportEmpty = errors.New("no valid vocabulary entries found")

// LineError reports an entry that parsed but failed record validation.
// Line is 1-based.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

const (
	fieldSeparator = ":"
	maxFields      = 3
)

// Parse converts raw text into vocabulary records in input order. Lines
// without both a term and a definition are skipped. Records get fresh IDs
// and no study set.
func Parse(raw string) ([]domain.Vocabulary, error) {
	return ParseInto(uuid.Nil, raw)
}

// ParseInto behaves like Parse and stamps every record with studySetID and
// a zero-based position. A record that breaks domain.Vocabulary's limits
// fails the whole parse with a *LineError.
func ParseInto(studySetID uuid.UUID, raw string) ([]domain.Vocabulary, error) {
	now := time.Now().UTC()

	var records []domain.Vocabulary
	for i, line := range strings.Split(raw, "\n") {
		entry, ok := parseLine(line)
		if !ok {
			continue
		}

		entry.ID = uuid.New()
		entry.StudySetID = studySetID
		entry.Position = len(records)
		entry.CreatedAt = now
		entry.UpdatedAt = now
		if err := entry.Validate(); err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		records = append(records, entry)
	}

	if len(records) == 0 {
		return nil, ErrImportEmpty
	}
	return records, nil
}

// parseLine splits one line into term, definition and optional example.
func parseLine(line string) (domain.Vocabulary, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Vocabulary{}, false
	}

	fields := strings.SplitN(line, fieldSeparator, maxFields)
	if len(fields) < 2 {
		return domain.Vocabulary{}, false
	}

	v := domain.Vocabulary{
		Term:       strings.TrimSpace(fields[0]),
		Definition: strings.TrimSpace(fields[1]),
	}
	if v.Term == "" || v.Definition == "" {
		return domain.Vocabulary{}, false
	}
	if len(fields) == maxFields {
		v.Example = strings.TrimSpace(fields[2])
	}
	return v, true
}

// Format renders records back into the import format, one per line. Records
// without an example produce two fields.
func Format(records []domain.Vocabulary) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Term)
		b.WriteString(fieldSeparator)
		b.WriteString(r.Definition)
		if r.Example != "" {
			b.WriteString(fieldSeparator)
			b.WriteString(r.Example)
		}
	}
	return b.String()
}
