package store

import (
	"errors"
	"fmt"
)

// Sentinels shared by every store implementation. Callers match them with
// errors.Is; the postgres layer wraps driver errors around them.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Per-entity variants. Each wraps ErrNotFound or ErrDuplicate so handlers can
// match either the specific or the generic form.
var (
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrFolderNotFound     = fmt.Errorf("%w: folder", ErrNotFound)
	ErrStudySetNotFound   = fmt.Errorf("%w: study set", ErrNotFound)
	ErrVocabularyNotFound = fmt.Errorf("%w: vocabulary", ErrNotFound)
	ErrTaskNotFound       = fmt.Errorf("%w: task", ErrNotFound)

	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)
