// Package errors provides standardized error handling patterns for streamdash
// components. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping and classification across the
// frame pipeline.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary I/O errors that may be retried
	ErrorTransient ErrorClass = iota
	// ErrorConfiguration represents setup errors that must surface before
	// streaming begins (invalid delimiters, unsupported decoder method)
	ErrorConfiguration
	// ErrorDecode represents malformed frame payloads; the frame is
	// skipped and streaming continues
	ErrorDecode
	// ErrorOverflow represents an accumulation buffer exceeding its
	// configured bound; the partial frame is discarded and scanning resumes
	ErrorOverflow
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorConfiguration:
		return "configuration"
	case ErrorDecode:
		return "decode"
	case ErrorOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Lifecycle errors
	ErrAlreadyStarted = errors.New("component already started")
	ErrNotStarted     = errors.New("component not started")
	ErrAlreadyStopped = errors.New("component already stopped")
	ErrShuttingDown   = errors.New("component is shutting down")

	// Configuration errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrMissingDelimiter = errors.New("missing required delimiter")
	ErrInvalidDecoder   = errors.New("unsupported decoder method")

	// Streaming errors
	ErrDecodeFailed     = errors.New("frame decode failed")
	ErrChecksumMismatch = errors.New("frame checksum mismatch")
	ErrBufferOverflow   = errors.New("accumulation buffer overflow")
	ErrSourceClosed     = errors.New("byte source closed")
	ErrQueueFull        = errors.New("work queue full")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsTransient checks if an error is transient and should be retried
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}

	return errors.Is(err, ErrSourceClosed) ||
		errors.Is(err, ErrQueueFull) ||
		errors.Is(err, context.DeadlineExceeded)
}

// IsConfiguration checks if an error is a setup-time configuration error
func IsConfiguration(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorConfiguration
	}

	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingDelimiter) ||
		errors.Is(err, ErrInvalidDecoder)
}

// IsDecode checks if an error is a per-frame decode failure
func IsDecode(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorDecode
	}

	return errors.Is(err, ErrDecodeFailed)
}

// IsOverflow checks if an error is an accumulation buffer overflow
func IsOverflow(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorOverflow
	}

	return errors.Is(err, ErrBufferOverflow)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsConfiguration(err) {
		return ErrorConfiguration
	}
	if IsDecode(err) {
		return ErrorDecode
	}
	if IsOverflow(err) {
		return ErrorOverflow
	}
	// Default to transient for unknown errors to allow retry
	return ErrorTransient
}

// newClassified creates a new classified error.
// This is an internal helper - use the Wrap* functions instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// WrapConfiguration wraps an error as a setup-time configuration error
func WrapConfiguration(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorConfiguration, wrappedErr, component, method, wrappedErr.Error())
}

// WrapDecode wraps an error as a recoverable per-frame decode failure
func WrapDecode(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorDecode, wrappedErr, component, method, wrappedErr.Error())
}

// WrapOverflow wraps an error as a recoverable buffer overflow
func WrapOverflow(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorOverflow, wrappedErr, component, method, wrappedErr.Error())
}
