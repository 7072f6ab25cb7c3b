package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a user-input fault. Every code maps to HTTP 400.
type ErrorCode string

const (
	CodeMissingArguments    ErrorCode = "MissingArguments"
	CodeInvalidNumericInput ErrorCode = "InvalidNumericInput"
	CodeInvalidMode         ErrorCode = "InvalidMode"
	CodeInvalidOperator     ErrorCode = "InvalidOperator"
	CodeInvalidRequest      ErrorCode = "InvalidRequest"
	CodeInvalidInput        ErrorCode = "InvalidInput"
	CodeDivisionByZero      ErrorCode = "DivisionByZero"
	CodeDomainError         ErrorCode = "DomainError"
	CodeComputationError    ErrorCode = "ComputationError"
	CodeInvalidRate         ErrorCode = "InvalidRate"
	CodeExpressionError     ErrorCode = "ExpressionError"
)

// Sentinels for errors.Is checks. They compare by code only.
var (
	ErrMissingArguments    = &CalcError{Code: CodeMissingArguments}
	ErrInvalidNumericInput = &CalcError{Code: CodeInvalidNumericInput}
	ErrInvalidMode         = &CalcError{Code: CodeInvalidMode}
	ErrInvalidOperator     = &CalcError{Code: CodeInvalidOperator}
	ErrInvalidRequest      = &CalcError{Code: CodeInvalidRequest}
	ErrInvalidInput        = &CalcError{Code: CodeInvalidInput}
	ErrDivisionByZero      = &CalcError{Code: CodeDivisionByZero}
	ErrDomain              = &CalcError{Code: CodeDomainError}
	ErrComputation         = &CalcError{Code: CodeComputationError}
	ErrInvalidRate         = &CalcError{Code: CodeInvalidRate}
	ErrExpression          = &CalcError{Code: CodeExpressionError}
)

// CalcError is a user-caused calculation fault with a stable code and a
// human-readable message.
type CalcError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// NewError builds a CalcError with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *CalcError {
	return &CalcError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a CalcError carrying cause.
func WrapError(code ErrorCode, cause error, format string, args ...any) *CalcError {
	return &CalcError{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *CalcError) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return string(e.Code)
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CalcError) Unwrap() error { return e.Err }

// Is reports whether target is a CalcError with the same code.
func (e *CalcError) Is(target error) bool {
	t, ok := target.(*CalcError)
	return ok && t.Code == e.Code
}

// AsCalcError extracts the CalcError in err's chain, if any.
func AsCalcError(err error) (*CalcError, bool) {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
