// Package errors provides coded, structured errors for genex.
//
// Overview:
//   - Responsibility: Classify scaffolding and descriptor failures by code
//   - Key Types: Code for classification, E for structured errors, Builder
//   - Concurrency Model: All functions are safe for concurrent use
//   - Error Semantics: Compatible with standard library wrapping (errors.Is/As)
//   - Performance Notes: One allocation per error
//
// Usage:
//
//	err := errors.New(errors.CodeUnknownIdentifier, "id \"uuid\" is not an attribute")
//	wrapped := errors.Wrap(errors.CodeIO, "generator.write", originalErr)
//	if errors.IsCode(err, errors.CodeDescriptorRead) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

// Codes raised by the generator, the descriptor merger and the CLI layer.
const (
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeInvalidConfig      Code = "INVALID_CONFIG"
	CodeEmptyAttributeList Code = "EMPTY_ATTRIBUTE_LIST"
	CodeUnknownIdentifier  Code = "UNKNOWN_IDENTIFIER"
	CodePackageDerivation  Code = "PACKAGE_DERIVATION"
	CodeIO                 Code = "IO_FAILURE"
	CodeRender             Code = "RENDER_FAILURE"
	CodeDescriptorRead     Code = "DESCRIPTOR_READ"
	CodeDescriptorWrite    Code = "DESCRIPTOR_WRITE"
	CodeCanceled           Code = "CANCELED"
)

// E is a structured error with code, operation, message and cause.
type E struct {
	Code    Code   // Error classification code
	Op      string // Operation that failed
	Err     error  // Underlying error (may be nil)
	Msg     string // Human-readable message
	Details []any  // Additional structured details
}

// Error implements the error interface.
func (e *E) Error() string {
	prefix := string(e.Code)
	if e.Op != "" {
		prefix = fmt.Sprintf("%s %s", e.Code, e.Op)
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Msg)
	}
}

// Unwrap returns the underlying error.
func (e *E) Unwrap() error {
	return e.Err
}

// New creates a structured error with the given code and message.
func New(code Code, msg string) error {
	return &E{Code: code, Msg: msg}
}

// Newf creates a structured error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &E{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a structured error around err.
// The operation name identifies where the error occurred.
func Wrap(code Code, op string, err error) error {
	return &E{Code: code, Op: op, Err: err}
}

// Wrapf creates a structured error around err with a formatted message.
func Wrapf(code Code, op string, err error, format string, args ...any) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the outermost code from an error chain.
// Returns an empty code if no *E is found.
func CodeOf(err error) Code {
	var e *E
	if err != nil && errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// As delegates to the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is delegates to the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Builder provides a fluent interface for constructing errors.
type Builder struct {
	code    Code
	op      string
	err     error
	msg     string
	details []any
}

// Build starts a new error with the given code.
func Build(code Code) *Builder {
	return &Builder{code: code}
}

// WithOp sets the operation that failed.
func (b *Builder) WithOp(op string) *Builder {
	b.op = op
	return b
}

// WithErr sets the underlying error.
func (b *Builder) WithErr(err error) *Builder {
	b.err = err
	return b
}

// WithMsgf sets a formatted message.
func (b *Builder) WithMsgf(format string, args ...any) *Builder {
	b.msg = fmt.Sprintf(format, args...)
	return b
}

// WithDetails appends structured details.
func (b *Builder) WithDetails(details ...any) *Builder {
	b.details = append(b.details, details...)
	return b
}

// Err returns the built error.
func (b *Builder) Err() error {
	return &E{
		Code:    b.code,
		Op:      b.op,
		Err:     b.err,
		Msg:     b.msg,
		Details: b.details,
	}
}
