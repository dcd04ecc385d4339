// Package apperr defines the error categories used across omi.
//
// Error taxonomy
//
//	UserError           missing or invalid user input (wrong flag, bad value).
//	                    The CLI prints only the message. Exit code: 1.
//
//	ErrCancelled        the user aborted an interactive flow (target selector,
//	                    overwrite prompt). Exit code: 0.
//
//	ParserError         a decoded document is malformed or incomplete for the
//	                    dialect that parses it (missing id, empty resources).
//
//	DecodeError         the raw bytes are not valid JSON, YAML or Turtle.
//
//	MetadataError       the metadata version cannot be determined or names an
//	                    unknown format.
//
//	ConversionError     no conversion path exists between two versions.
//
//	NotImplementedError a compiler was asked to handle an entity kind it does
//	                    not support. Always a programming error.
//
// Everything else is a plain Go error (I/O, template lookups) and is
// propagated with fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.  The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrParse          = errors.New("parse error")
	ErrDecode         = errors.New("decode error")
	ErrMetadata       = errors.New("metadata error")
	ErrConversion     = errors.New("conversion error")
	ErrNotImplemented = errors.New("not implemented")
)

// UserError represents an error caused by invalid or missing user input.
// Cobra command handlers return this instead of a bare fmt.Errorf so that
// the root command can suppress repeated usage output and format the message
// in a user-friendly way.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// ParserError reports a document that a dialect parser rejects.
type ParserError struct {
	Dialect string
	Message string
}

func (e *ParserError) Error() string {
	if e.Dialect == "" {
		return e.Message
	}
	return e.Dialect + ": " + e.Message
}

func (e *ParserError) Is(target error) bool { return target == ErrParse }

// Parserf creates a formatted ParserError for the given dialect.
func Parserf(dialect, format string, args ...any) error {
	return &ParserError{Dialect: dialect, Message: fmt.Sprintf(format, args...)}
}

// DecodeError wraps a byte-level decoding failure.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Decode creates a DecodeError for the given format.
func Decode(format string, err error) error {
	return &DecodeError{Format: format, Err: err}
}

// MetadataError reports an undeterminable or unsupported metadata version.
type MetadataError struct {
	Message string
}

func (e *MetadataError) Error() string { return e.Message }

func (e *MetadataError) Is(target error) bool { return target == ErrMetadata }

// Metadataf creates a formatted MetadataError.
func Metadataf(format string, args ...any) error {
	return &MetadataError{Message: fmt.Sprintf(format, args...)}
}

// ConversionError reports that no conversion path connects From and To.
type ConversionError struct {
	From string
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("no conversion path found from %s to %s", e.From, e.To)
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// NotImplementedError reports a compiler that cannot handle an entity kind.
type NotImplementedError struct {
	Compiler string
	Kind     string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: no handler for %s", e.Compiler, e.Kind)
}

func (e *NotImplementedError) Is(target error) bool { return target == ErrNotImplemented }

// NotImplemented creates a NotImplementedError.
func NotImplemented(compiler, kind string) error {
	return &NotImplementedError{Compiler: compiler, Kind: kind}
}
