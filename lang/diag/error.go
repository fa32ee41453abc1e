package diag

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Lexical errors.
var (
	ErrUnfinishedString    = NewError("Unfinished string.")
	ErrUnfinishedCharacter = NewError("Unfinished character.")
	ErrUnfinishedComment   = NewError("Unfinished comment.")
	ErrUnknownCharacter    = NewError("Unknown character.")
	ErrCharacterSize       = NewError("Single quotes should encapsulate exactly one character.")
	ErrIntegerRange        = NewError("Integer literal out of range.")
)

// Syntax errors.
var (
	ErrExpectParen       = NewError("Expect ')' after expression.")
	ErrExpectExpression  = NewError("Expect expression.")
	ErrExpectNewline     = NewError("Expect newline.")
	ErrExpectIndentation = NewError("Expect indentation.")
	ErrExpectColon       = NewError("Expect colon to start new scope.")
	ErrExpectVarName     = NewError("Expect name after 'var'.")
	ErrInvalidAssignment = NewError("Invalid assignment target.")
)

// Runtime errors.
var (
	ErrUndefinedVariable   = NewError("Undefined variable")
	ErrUnsupportedOperator = NewError("Unsupported operator")
	ErrRepeatCount         = NewError("Invalid repeat count")
	ErrDivisionByZero      = NewError("Division by zero.")
	ErrNegativeShift       = NewError("Negative shift count.")
	ErrNegativeExponent    = NewError("Negative integer exponent.")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.With], [Error.Wrap] or
// [Error.Detail] still match it with [errors.Is].
type Error struct {
	msg    string
	detail string      // Appended to msg, not part of identity
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
//  1. "<msg> <detail>: <err>"
//  2. "<msg> <detail>"
//  3. "<err>"
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if head := e.Message(); head != "" {
		part = append(part, head)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Message returns the message and detail without the wrapped cause.
func (e *Error) Message() string {
	switch {
	case e.detail == "":
		return e.msg
	case e.msg == "":
		return e.detail
	default:
		return e.msg + " " + e.detail
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same base message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if head := e.Message(); head != "" {
		attrs = append(attrs, slog.String("error", head))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:    e.msg,
		detail: e.detail,
		err:    err,
		attrs:  e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:    e.msg,
		detail: e.detail,
		err:    e.err,
		attrs:  newAttrs,
	}
}

// Detail returns a copy of e whose message is followed by the formatted
// text, e.g. ErrUndefinedVariable.Detail("'%s'", name).
func (e *Error) Detail(format string, args ...any) *Error {
	return &Error{
		msg:    e.msg,
		detail: fmt.Sprintf(format, args...),
		err:    e.err,
		attrs:  e.attrs,
	}
}
