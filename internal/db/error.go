package db

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// InvalidPaginationTokenError is an error type for invalid pagination token errors
type InvalidPaginationTokenError struct {
	Message string
}

func (e *InvalidPaginationTokenError) Error() string {
	return e.Message
}

func IsInvalidPaginationTokenError(err error) bool {
	var target *InvalidPaginationTokenError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// Server error codes, see https://www.mongodb.com/docs/manual/reference/error-codes/
const (
	writeConflictCode      = 112
	transactionAbortedCode = 251
)

func IsWriteConflictError(err error) bool {
	return hasServerErrorCode(err, writeConflictCode)
}

func IsTransactionAbortedError(err error) bool {
	return hasServerErrorCode(err, transactionAbortedCode)
}

// hasServerErrorCode matches command errors as well as write exceptions.
func hasServerErrorCode(err error, code int) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorCode(code)
	}
	return false
}

func hasErrorLabel(err error, label string) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel(label)
	}
	return false
}
