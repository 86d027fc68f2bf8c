package errors

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. The loader and normalizer stages fail a whole run
// with one of the fatal sentinels; per-row problems degrade to null fields
// and never abort, so they have counts on the snapshot instead of errors.
var (
	// ErrSourceUnavailable marks a missing or unreadable source file.
	// Fatal: no snapshot is produced.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSourceMalformed marks a source file lacking required columns.
	// Fatal: no snapshot is produced.
	ErrSourceMalformed = errors.New("source malformed")
)

// SourceUnavailable wraps a cause as a fatal source-unavailable error
func SourceUnavailable(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
}

// SourceMalformed wraps a description as a fatal source-malformed error
func SourceMalformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSourceMalformed, fmt.Sprintf(format, args...))
}

// IsSourceUnavailable reports whether err is a source-unavailable failure
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsSourceMalformed reports whether err is a source-malformed failure
func IsSourceMalformed(err error) bool {
	return errors.Is(err, ErrSourceMalformed)
}
