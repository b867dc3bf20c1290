package model

import (
	"errors"
	"fmt"
)

// Code identifies one of the exhaustive error kinds this server can
// return. Every predictable failure in the document model, the parsers,
// and dispatch carries one of these so the transport can serialize a
// typed error envelope instead of a bare string.
type Code string

const (
	CodeMalformedExpression Code = "MalformedExpression"
	CodeUnknownChordSymbol  Code = "UnknownChordSymbol"
	CodeDuplicateName       Code = "DuplicateName"
	CodeNotFound            Code = "NotFound"
	CodeInvalidRange        Code = "InvalidRange"
	CodeSectionOverlap      Code = "SectionOverlap"
	CodeSectionWouldSwallow Code = "SectionWouldSwallow"
	CodePitchOutOfRange     Code = "PitchOutOfRange"
	CodeDurationNonPositive Code = "DurationNonPositive"
	CodeTrackMissing        Code = "TrackMissing"
	CodeNoProgression       Code = "NoProgression"
	CodeNothingToUndo       Code = "NothingToUndo"
	CodeNothingToRedo       Code = "NothingToRedo"
	CodeUnknownTool         Code = "UnknownTool"
	CodeSchemaViolation     Code = "SchemaViolation"
	CodeIOError             Code = "IOError"
)

// Error is the typed error value every mutator and parser in this module
// returns on a predictable failure. It never carries a stack trace or
// wraps an opaque cause: every field is meant to be serialized verbatim
// into a JSON-RPC error envelope.
type Error struct {
	Code    Code
	Message string
	Data    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds an Error with no extra data.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorf builds an Error with a formatted message.
func NewErrorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithData attaches structured data to an error and returns it, for
// chaining at the call site.
func (e *Error) WithData(data map[string]any) *Error {
	e.Data = data
	return e
}

// AsError reports whether err is (or wraps) a *Error and returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
