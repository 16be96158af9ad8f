package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrJobNotFound = fmt.Errorf("%w: job", ErrNotFound)

	// Input errors
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNoHeaderRow       = errors.New("input has no header row")
	ErrJobExpired        = errors.New("job results expired")
)

// Error constructors with context
func NewJobNotFoundError(id JobID) error {
	return fmt.Errorf("%w with id %s", ErrJobNotFound, id)
}

func NewUnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
