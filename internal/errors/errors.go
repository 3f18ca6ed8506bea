package errors

import (
	goerrors "errors"
	"fmt"
)

type (
	// ErrorType is a sentinel error. Every error returned by ramkit packages wraps exactly one
	// ErrorType, which can be recovered with FindErrorType or matched with errors.Is.
	ErrorType struct {
		message string
	}

	wrappedError struct {
		message string
		cause   error
	}
)

var (
	ErrOutOfRange        = newErrorType("out of range")
	ErrInvalidArgument   = newErrorType("invalid argument")
	ErrNullArgument      = newErrorType("null argument")
	ErrUnsupportedSink   = newErrorType("unsupported sink")
	ErrUnsupportedSource = newErrorType("unsupported source")
	ErrParse             = newErrorType("parse error")
	ErrNotFound          = newErrorType("not found")
)

func newErrorType(message string) *ErrorType {
	return &ErrorType{message: message}
}

func (e *ErrorType) Error() string {
	return e.message
}

func (w *wrappedError) Error() string {
	if w.cause == nil {
		return w.message
	}
	return w.message + ": " + w.cause.Error()
}

func (w *wrappedError) Unwrap() error {
	return w.cause
}

// New returns an error without an ErrorType cause.
func New(message string) error {
	return &wrappedError{message: message}
}

// Errorf formats the message like fmt.Errorf. A %w verb is honoured.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap annotates err with message. Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{message: message, cause: err}
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{message: fmt.Sprintf(format, args...), cause: err}
}

// FindErrorType walks the cause chain and returns the first ErrorType, or nil.
func FindErrorType(err error) *ErrorType {
	var et *ErrorType
	if goerrors.As(err, &et) {
		return et
	}
	return nil
}
