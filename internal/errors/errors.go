// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNoData         = errors.New("no data returned")
	ErrConfigInvalid  = errors.New("invalid configuration")
)

// DataError represents an upstream market-data failure, wrapped with the
// symbol it occurred for.
type DataError struct {
	Op     string // "history", "quote", "fundamentals"
	Symbol string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error [%s] %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(op, symbol string, err error) *DataError {
	return &DataError{Op: op, Symbol: symbol, Err: err}
}

// AnalysisError represents a failed analysis for one symbol.
type AnalysisError struct {
	Symbol string
	Stage  string
	Err    error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error [%s] %s: %v", e.Symbol, e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(symbol, stage string, err error) *AnalysisError {
	return &AnalysisError{Symbol: symbol, Stage: stage, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
