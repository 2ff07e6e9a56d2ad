// Package errors defines the single error type reported by the Orion
// front end, compiler and virtual machine.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Error is the tagged error value returned by every phase. Any Error aborts
// the operation in progress; there is no recoverable variant.
type Error struct {
	Code        ErrorCode
	Message     string
	Location    SourceLocation
	Suggestions []Suggestion
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.Phase())
	b.WriteString(" error: ")
	b.WriteString(e.Message)
	if !e.Location.IsZero() {
		b.WriteString(" (")
		b.WriteString(e.Location.String())
		b.WriteString(")")
	}
	return b.String()
}

// Category returns the category of the error code.
func (e *Error) Category() Category {
	return e.Code.Category()
}

// Hint returns the "did you mean" text, if any.
func (e *Error) Hint() string {
	return FormatSuggestions(e.Suggestions)
}

// At returns a copy of the error with the given location attached.
func (e *Error) At(loc SourceLocation) *Error {
	cp := *e
	cp.Location = loc
	return &cp
}

// New creates an Error with the given code and message.
func New(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Errorf creates an Error with the given code and a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// TypeErrorf reports an operation applied to a value of the wrong tag.
func TypeErrorf(format string, args ...any) *Error {
	return Errorf(E3001, format, args...)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CategoryOf returns the category of err, or the empty category if err is
// not an Orion error.
func CategoryOf(err error) Category {
	if e, ok := As(err); ok {
		return e.Category()
	}
	return ""
}

// CodeOf returns the error code of err, or the empty code if err is not an
// Orion error.
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether err is an Orion error in the given category.
func Is(err error, category Category) bool {
	return CategoryOf(err) == category
}
