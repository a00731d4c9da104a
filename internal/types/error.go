package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// 5XX
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	LedgerUnavailable    ErrorCode = "LEDGER_UNAVAILABLE"
	PayoutFailed         ErrorCode = "PAYOUT_FAILED"
	PersistenceError     ErrorCode = "PERSISTENCE_ERROR"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"
	// 4XX
	ValidationError    ErrorCode = "VALIDATION_ERROR"
	TransactionInvalid ErrorCode = "TRANSACTION_INVALID"
	NotFound           ErrorCode = "NOT_FOUND"
	BadRequest         ErrorCode = "BAD_REQUEST"
	Forbidden          ErrorCode = "FORBIDDEN"
)

// Error represents an error with an HTTP status code and an application-specific error code.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

const UninitializedStatusCode = 0

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the provided status code, error code, and underlying error.
// If the status code is not provided (0), it defaults to http.StatusInternalServerError(500).
// If the error code is empty, it defaults to INTERNAL_SERVICE_ERROR.
func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	if statusCode == UninitializedStatusCode {
		statusCode = http.StatusInternalServerError
	}
	if errorCode == "" {
		errorCode = InternalServiceError
	}
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

func NewValidationError(msg string) *Error {
	return NewErrorWithMsg(http.StatusBadRequest, ValidationError, msg)
}

func NewLedgerUnavailableError(err error) *Error {
	return NewError(http.StatusServiceUnavailable, LedgerUnavailable, err)
}

func NewPersistenceError(err error) *Error {
	return NewError(http.StatusInternalServerError, PersistenceError, err)
}

// HasErrorCode reports whether err is a *Error carrying the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.ErrorCode == code
	}
	return false
}

// TransactionMismatchError names the first transaction field that disagreed
// with the caller's claim.
type TransactionMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *TransactionMismatchError) Error() string {
	return fmt.Sprintf("transaction %s mismatch: expected %q, got %q", e.Field, e.Expected, e.Actual)
}

func NewTransactionInvalidError(field, expected, actual string) *Error {
	return NewError(http.StatusUnprocessableEntity, TransactionInvalid, &TransactionMismatchError{
		Field:    field,
		Expected: expected,
		Actual:   actual,
	})
}

// PayoutFailureError describes a transfer that did not settle. Ambiguous is
// set when the outcome could not be determined, i.e. the submission may still
// land on the ledger and must be reconciled before any retry.
type PayoutFailureError struct {
	Reason      string
	OutcomeCode string
	Ambiguous   bool
}

func (e *PayoutFailureError) Error() string {
	if e.OutcomeCode != "" {
		return fmt.Sprintf("payout failed (%s): %s", e.OutcomeCode, e.Reason)
	}
	return fmt.Sprintf("payout failed: %s", e.Reason)
}

func NewPayoutFailedError(reason, outcomeCode string, ambiguous bool) *Error {
	return NewError(http.StatusBadGateway, PayoutFailed, &PayoutFailureError{
		Reason:      reason,
		OutcomeCode: outcomeCode,
		Ambiguous:   ambiguous,
	})
}

// IsAmbiguousPayout reports whether err is a payout failure whose ledger
// outcome is unknown.
func IsAmbiguousPayout(err error) bool {
	var failure *PayoutFailureError
	if errors.As(err, &failure) {
		return failure.Ambiguous
	}
	return false
}
