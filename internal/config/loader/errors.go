package loader

import (
	"errors"
	"fmt"
)

// Errors returned by loaders.
var (
	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrIncludeDepthExceeded indicates too many nested @include directives.
	ErrIncludeDepthExceeded = errors.New("include depth exceeded")

	// ErrInvalidInclude indicates a malformed @include value.
	ErrInvalidInclude = errors.New("@include must be string or array of strings")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
