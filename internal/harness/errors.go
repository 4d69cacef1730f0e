package harness

import (
	"errors"
	"fmt"
)

// ContractErrorCode categorizes harness-level failures.
type ContractErrorCode string

const (
	// ErrCodeMissingEntrypoint indicates the loaded source does not define
	// the IsValidOutput entry point.
	ErrCodeMissingEntrypoint ContractErrorCode = "MISSING_ENTRYPOINT"

	// ErrCodeMalformedContract indicates the entry point exists but does
	// not have the (string, string) -> (bool, string, string) shape.
	ErrCodeMalformedContract ContractErrorCode = "MALFORMED_CONTRACT"

	// ErrCodeRuntimeFault indicates the source failed to load or the entry
	// point faulted during invocation.
	ErrCodeRuntimeFault ContractErrorCode = "RUNTIME_FAULT"

	// ErrCodeTimeout indicates the invocation exceeded the wall-clock
	// execution budget.
	ErrCodeTimeout ContractErrorCode = "EXECUTION_TIMEOUT"
)

// ContractError reports that the harness could not execute a validator as
// specified. It is distinct from a validation failure: it carries a
// diagnostic message but never a reason/violation pair.
type ContractError struct {
	Code    ContractErrorCode
	Message string
	Err     error // underlying cause, optional
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ContractError) Unwrap() error {
	return e.Err
}

// IsContractError reports whether err is (or wraps) a ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// ContractCode extracts the code from a wrapped ContractError, or "" if
// err is not one.
func ContractCode(err error) ContractErrorCode {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func newContractError(code ContractErrorCode, message string, err error) *ContractError {
	return &ContractError{Code: code, Message: message, Err: err}
}
