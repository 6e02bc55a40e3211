package parser

import "errors"

var (
	// ErrEmptyInput reports a blank résumé text. Callers must verify text is
	// non-empty before extraction; an empty input is a contract violation,
	// not a hollow record.
	ErrEmptyInput = errors.New("resume text is empty")

	// ErrNoVocabulary reports that the skills vocabulary was never loaded.
	// This is a hard dependency failure, never silently defaulted.
	ErrNoVocabulary = errors.New("skills vocabulary is not loaded")
)
